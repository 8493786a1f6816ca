package conflict

// Kind identifies the type of a detected conflict
type Kind string

const (
	KindDoubleBooking         Kind = "double_booking"
	KindSkillMismatch         Kind = "skill_mismatch"
	KindMaintenanceAssignment Kind = "maintenance_assignment"
)

// Conflict is one entry in a detection report
type Conflict struct {
	Kind          Kind     `json:"kind"`
	PilotID       string   `json:"pilot_id,omitempty"`
	DroneID       string   `json:"drone_id,omitempty"`
	MissionIDs    []string `json:"mission_ids,omitempty"`
	MissingSkills []string `json:"missing_skills,omitempty"`
	OverlapStart  string   `json:"overlap_start,omitempty"`
	OverlapEnd    string   `json:"overlap_end,omitempty"`
	Detail        string   `json:"detail"`
}
