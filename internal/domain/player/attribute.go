package player

// AttributeCode is the short column code used by game exports, e.g. "Fin".
type AttributeCode string

// Category groups attribute codes the way player profiles present them.
type Category string

const (
	CategoryTechnical   Category = "technical"
	CategoryMental      Category = "mental"
	CategoryPhysical    Category = "physical"
	CategoryGoalkeeping Category = "goalkeeping"
)

const (
	Corners        AttributeCode = "Cor"
	Crossing       AttributeCode = "Cro"
	Dribbling      AttributeCode = "Dri"
	Finishing      AttributeCode = "Fin"
	FirstTouch     AttributeCode = "Fir"
	FreeKicks      AttributeCode = "Fre"
	Heading        AttributeCode = "Hea"
	LongShots      AttributeCode = "Lon"
	LongThrows     AttributeCode = "LTh"
	Marking        AttributeCode = "Mar"
	Passing        AttributeCode = "Pas"
	PenaltyTaking  AttributeCode = "Pen"
	Tackling       AttributeCode = "Tck"
	Technique      AttributeCode = "Tec"
	Aggression     AttributeCode = "Agg"
	Anticipation   AttributeCode = "Ant"
	Bravery        AttributeCode = "Bra"
	Composure      AttributeCode = "Cmp"
	Concentration  AttributeCode = "Cnt"
	Decisions      AttributeCode = "Dec"
	Determination  AttributeCode = "Det"
	Flair          AttributeCode = "Fla"
	Leadership     AttributeCode = "Ldr"
	OffTheBall     AttributeCode = "Off"
	Positioning    AttributeCode = "Pos"
	Teamwork       AttributeCode = "Tea"
	Vision         AttributeCode = "Vis"
	WorkRate       AttributeCode = "Wor"
	Acceleration   AttributeCode = "Acc"
	Agility        AttributeCode = "Agi"
	Balance        AttributeCode = "Bal"
	JumpingReach   AttributeCode = "Jum"
	NaturalFitness AttributeCode = "Nat"
	Pace           AttributeCode = "Pac"
	Stamina        AttributeCode = "Sta"
	Strength       AttributeCode = "Str"
	AerialReach    AttributeCode = "Aer"
	CommandOfArea  AttributeCode = "Cmd"
	Communication  AttributeCode = "Com"
	Eccentricity   AttributeCode = "Ecc"
	Handling       AttributeCode = "Han"
	Kicking        AttributeCode = "Kic"
	OneOnOnes      AttributeCode = "1v1"
	Punching       AttributeCode = "Pun"
	Reflexes       AttributeCode = "Ref"
	RushingOut     AttributeCode = "TRO"
	Throwing       AttributeCode = "Thr"
)

// Attribute describes one code for presentation.
type Attribute struct {
	Code     AttributeCode
	Name     string
	Category Category
}

var attributes = []Attribute{
	{Corners, "Corners", CategoryTechnical},
	{Crossing, "Crossing", CategoryTechnical},
	{Dribbling, "Dribbling", CategoryTechnical},
	{Finishing, "Finishing", CategoryTechnical},
	{FirstTouch, "First Touch", CategoryTechnical},
	{FreeKicks, "Free Kick Taking", CategoryTechnical},
	{Heading, "Heading", CategoryTechnical},
	{LongShots, "Long Shots", CategoryTechnical},
	{LongThrows, "Long Throws", CategoryTechnical},
	{Marking, "Marking", CategoryTechnical},
	{Passing, "Passing", CategoryTechnical},
	{PenaltyTaking, "Penalty Taking", CategoryTechnical},
	{Tackling, "Tackling", CategoryTechnical},
	{Technique, "Technique", CategoryTechnical},
	{Aggression, "Aggression", CategoryMental},
	{Anticipation, "Anticipation", CategoryMental},
	{Bravery, "Bravery", CategoryMental},
	{Composure, "Composure", CategoryMental},
	{Concentration, "Concentration", CategoryMental},
	{Decisions, "Decisions", CategoryMental},
	{Determination, "Determination", CategoryMental},
	{Flair, "Flair", CategoryMental},
	{Leadership, "Leadership", CategoryMental},
	{OffTheBall, "Off the Ball", CategoryMental},
	{Positioning, "Positioning", CategoryMental},
	{Teamwork, "Teamwork", CategoryMental},
	{Vision, "Vision", CategoryMental},
	{WorkRate, "Work Rate", CategoryMental},
	{Acceleration, "Acceleration", CategoryPhysical},
	{Agility, "Agility", CategoryPhysical},
	{Balance, "Balance", CategoryPhysical},
	{JumpingReach, "Jumping Reach", CategoryPhysical},
	{NaturalFitness, "Natural Fitness", CategoryPhysical},
	{Pace, "Pace", CategoryPhysical},
	{Stamina, "Stamina", CategoryPhysical},
	{Strength, "Strength", CategoryPhysical},
	{AerialReach, "Aerial Reach", CategoryGoalkeeping},
	{CommandOfArea, "Command of Area", CategoryGoalkeeping},
	{Communication, "Communication", CategoryGoalkeeping},
	{Eccentricity, "Eccentricity", CategoryGoalkeeping},
	{Handling, "Handling", CategoryGoalkeeping},
	{Kicking, "Kicking", CategoryGoalkeeping},
	{OneOnOnes, "One on Ones", CategoryGoalkeeping},
	{Punching, "Punching (Tendency)", CategoryGoalkeeping},
	{Reflexes, "Reflexes", CategoryGoalkeeping},
	{RushingOut, "Rushing Out (Tendency)", CategoryGoalkeeping},
	{Throwing, "Throwing", CategoryGoalkeeping},
}

// Attributes lists every known code in profile order.
func Attributes() []Attribute {
	return append([]Attribute(nil), attributes...)
}

// Rating buckets an attribute value for display.
type Rating string

const (
	RatingUnknown Rating = "unknown"
	RatingPoor    Rating = "poor"
	RatingGood    Rating = "good"
	RatingElite   Rating = "elite"
)

func RateAttribute(value int) Rating {
	switch {
	case value < 1:
		return RatingUnknown
	case value >= 16:
		return RatingElite
	case value >= 11:
		return RatingGood
	default:
		return RatingPoor
	}
}
