package db

// Member represents a database member record
type Member struct {
	UserID      string
	StableID    string
	DisplayName string
	Status      string
}

// RoutineDefinition represents a recurring routine from which chore
// instances are generated
type RoutineDefinition struct {
	ID          string
	StableID    string
	Title       string
	RRule       string
	PointsValue float64
	Active      bool
}

// ChoreInstance represents a database chore instance record.
// Dates use the "2006-01-02" format.
type ChoreInstance struct {
	ID             string
	StableID       string
	RoutineID      string
	Title          string
	ScheduledDate  string
	PointsValue    float64
	AssignmentType string
	AssignedTo     string // empty unless assigned
	CompletedBy    string // empty unless completed
	Status         string
}

// SelectionProcess represents a persisted turn-order computation
type SelectionProcess struct {
	ID                   string
	StableID             string
	Algorithm            string
	RangeStart           string
	RangeEnd             string
	TotalAvailablePoints float64
	QuotaPerMember       float64
	CurrentTurnIndex     int
}

// SelectionTurn represents one position in a selection process turn order
type SelectionTurn struct {
	ID               string
	ProcessID        string
	Position         int
	UserID           string
	HistoricalPoints float64
}
