package ingest

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/gamehubfc/managerhub/internal/domain/player"
)

// Field names a scalar column of player.Player.
type Field string

const (
	FieldUID           Field = "uid"
	FieldName          Field = "name"
	FieldPosition      Field = "position"
	FieldClub          Field = "club"
	FieldAge           Field = "age"
	FieldHeight        Field = "height"
	FieldWeight        Field = "weight"
	FieldPreferredFoot Field = "preferredfoot"
	FieldCA            Field = "ca"
	FieldPA            Field = "pa"
	FieldApps          Field = "apps"
	FieldGoals         Field = "goals"
	FieldAssists       Field = "assists"
	FieldAverageRating Field = "averagerating"
	FieldTransferValue Field = "transfervalue"
)

var fieldOrder = []Field{
	FieldUID, FieldName, FieldPosition, FieldClub, FieldAge, FieldHeight, FieldWeight,
	FieldPreferredFoot, FieldCA, FieldPA, FieldApps, FieldGoals, FieldAssists,
	FieldAverageRating, FieldTransferValue,
}

// AttributeAliases lists the header spellings of one attribute code.
type AttributeAliases struct {
	Code    player.AttributeCode
	Aliases []string
}

var ErrAliasCollision = errors.New("alias claimed by more than one entry")

// Vocabulary is the header alias table used by the record builder. It is
// immutable once built and safe to share between parsers.
type Vocabulary struct {
	fields     map[Field][]string
	attributes []AttributeAliases
}

// NewVocabulary normalizes every alias and rejects tables where one alias
// would resolve to two different fields or codes.
func NewVocabulary(fields map[Field][]string, attributes []AttributeAliases) (Vocabulary, error) {
	owners := make(map[string]string)
	claim := func(alias, owner string) (string, error) {
		key := NormalizeKey(alias)
		if key == "" {
			return "", errors.Newf("alias %q for %s normalizes to nothing", alias, owner)
		}
		if prev, ok := owners[key]; ok && prev != owner {
			return "", errors.Wrapf(ErrAliasCollision, "%q used by %s and %s", key, prev, owner)
		}
		owners[key] = owner
		return key, nil
	}

	v := Vocabulary{
		fields:     make(map[Field][]string, len(fields)),
		attributes: make([]AttributeAliases, 0, len(attributes)),
	}
	for field, aliases := range fields {
		keys := make([]string, 0, len(aliases))
		for _, alias := range aliases {
			key, err := claim(alias, "field "+string(field))
			if err != nil {
				return Vocabulary{}, err
			}
			keys = append(keys, key)
		}
		v.fields[field] = keys
	}
	for _, attr := range attributes {
		keys := make([]string, 0, len(attr.Aliases))
		for _, alias := range attr.Aliases {
			key, err := claim(alias, "attribute "+string(attr.Code))
			if err != nil {
				return Vocabulary{}, err
			}
			keys = append(keys, key)
		}
		v.attributes = append(v.attributes, AttributeAliases{Code: attr.Code, Aliases: keys})
	}
	if len(v.fields[FieldName]) == 0 {
		return Vocabulary{}, errors.New("vocabulary needs at least one name alias")
	}
	return v, nil
}

// Fields returns the fields that have at least one alias, in record order.
func (v Vocabulary) Fields() []Field {
	out := make([]Field, 0, len(v.fields))
	for _, f := range fieldOrder {
		if len(v.fields[f]) > 0 {
			out = append(out, f)
		}
	}
	return out
}

// Aliases returns the normalized aliases of field.
func (v Vocabulary) Aliases(field Field) []string {
	return append([]string(nil), v.fields[field]...)
}

// Attributes returns the attribute table in lookup order.
func (v Vocabulary) Attributes() []AttributeAliases {
	out := make([]AttributeAliases, len(v.attributes))
	for i, a := range v.attributes {
		out[i] = AttributeAliases{Code: a.Code, Aliases: append([]string(nil), a.Aliases...)}
	}
	return out
}

// DefaultVocabulary covers the standard export view: short codes plus the
// spelled-out names.
func DefaultVocabulary() Vocabulary {
	return defaultVocabulary
}

var defaultVocabulary = mustVocabulary(NewVocabulary(
	map[Field][]string{
		FieldUID:           {"uid", "uniqueid"},
		FieldName:          {"name"},
		FieldPosition:      {"position"},
		FieldClub:          {"club", "team"},
		FieldAge:           {"age"},
		FieldHeight:        {"height"},
		FieldWeight:        {"weight"},
		FieldPreferredFoot: {"preferredfoot", "foot"},
		FieldCA:            {"ca", "currentability"},
		FieldPA:            {"pa", "potentialability"},
		FieldApps:          {"apps", "appearances"},
		FieldGoals:         {"gls", "goals"},
		FieldAssists:       {"ast", "assists"},
		FieldAverageRating: {"avrat", "averagerating", "avr"},
		FieldTransferValue: {"transfervalue", "value"},
	},
	[]AttributeAliases{
		{player.Corners, []string{"cor", "corners"}},
		{player.Crossing, []string{"cro", "crossing"}},
		{player.Dribbling, []string{"dri", "dribbling"}},
		{player.Finishing, []string{"fin", "finishing"}},
		{player.FirstTouch, []string{"fir", "firsttouch"}},
		{player.FreeKicks, []string{"fre", "freekicks", "freekicktaking"}},
		{player.Heading, []string{"hea", "heading"}},
		{player.LongShots, []string{"lon", "longshots"}},
		{player.LongThrows, []string{"lth", "longthrows"}},
		{player.Marking, []string{"mar", "marking"}},
		{player.Passing, []string{"pas", "passing"}},
		{player.PenaltyTaking, []string{"pen", "penaltytaking"}},
		{player.Tackling, []string{"tck", "tackling"}},
		{player.Technique, []string{"tec", "technique"}},
		{player.Aggression, []string{"agg", "aggression"}},
		{player.Anticipation, []string{"ant", "anticipation"}},
		{player.Bravery, []string{"bra", "bravery"}},
		{player.Composure, []string{"cmp", "composure"}},
		{player.Concentration, []string{"cnt", "concentration"}},
		{player.Decisions, []string{"dec", "decisions"}},
		{player.Determination, []string{"det", "determination"}},
		{player.Flair, []string{"fla", "flair"}},
		{player.Leadership, []string{"ldr", "leadership"}},
		{player.OffTheBall, []string{"off", "offtheball", "otb"}},
		{player.Positioning, []string{"pos", "positioning"}},
		{player.Teamwork, []string{"tea", "teamwork"}},
		{player.Vision, []string{"vis", "vision"}},
		{player.WorkRate, []string{"wor", "workrate"}},
		{player.Acceleration, []string{"acc", "acceleration"}},
		{player.Agility, []string{"agi", "agility"}},
		{player.Balance, []string{"bal", "balance"}},
		{player.JumpingReach, []string{"jum", "jumpingreach"}},
		{player.NaturalFitness, []string{"nat", "naturalfitness"}},
		{player.Pace, []string{"pac", "pace"}},
		{player.Stamina, []string{"sta", "stamina"}},
		{player.Strength, []string{"str", "strength"}},
		{player.AerialReach, []string{"aer", "aerialreach"}},
		{player.CommandOfArea, []string{"cmd", "commandofarea"}},
		{player.Communication, []string{"com", "communication"}},
		{player.Eccentricity, []string{"ecc", "eccentricity"}},
		{player.Handling, []string{"han", "handling"}},
		{player.Kicking, []string{"kic", "kicking"}},
		{player.OneOnOnes, []string{"1v1", "oneonones"}},
		{player.Punching, []string{"pun", "punching", "punchingtendency"}},
		{player.Reflexes, []string{"ref", "reflexes"}},
		{player.RushingOut, []string{"tro", "rushingout", "rushingouttendency"}},
		{player.Throwing, []string{"thr", "throwing"}},
	},
))

func mustVocabulary(v Vocabulary, err error) Vocabulary {
	if err != nil {
		panic(fmt.Sprintf("ingest: default vocabulary: %v", err))
	}
	return v
}
