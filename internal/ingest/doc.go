// Package ingest turns HTML table exports of a game season into normalized
// player records.
//
// The pipeline runs in four steps: ExtractTable finds the header and data
// rows, NewColumnIndex maps header labels to alias keys, NormalizeCell
// coerces raw cell text, and BuildPlayers assembles one player.Player per
// named row using a Vocabulary. Parser ties the steps together and never
// lets a failure escape as a panic.
package ingest
