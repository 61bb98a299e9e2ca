package domain

// Sentinel values substituted when a catalog entry carries no data for a
// field. They are legitimate results, not errors.
const (
	NoNameAvailable     = "No name available"
	NoMusclesTargeted   = "No muscles targeted"
	NoEquipmentRequired = "No equipment required"
)

// Exercise is a single recommendation produced by the matcher. It is built
// fresh on every query and never persisted by the recommendation engine.
// All four fields are always populated; sentinels stand in for missing
// catalog data.
type Exercise struct {
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup"` // Comma-joined muscle names from the catalog entry
	Equipment   string `json:"equipment"`   // Comma-joined equipment names from the catalog entry
	Date        string `json:"date"`        // Date the recommendation was generated, "2006-01-02"
}
