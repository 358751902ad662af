package models

// Solve is a recorded, completed puzzle solve.
type Solve struct {
	ID         string `json:"id"`
	Seed       string `json:"seed"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Player     string `json:"player,omitempty"`
	MoveCount  int    `json:"move_count"`
	Moves      string `json:"moves,omitempty"`
	DurationMS int64  `json:"duration_ms"`
	SolvedAt   string `json:"solved_at"`
}

// SolveFilters narrows leaderboard and history queries.
type SolveFilters struct {
	Width  *int
	Height *int
	Player *string
}
