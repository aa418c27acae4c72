package entity

// Session is the public view of a hosted board.
type Session struct {
	ID       string  `json:"id"`
	State    string  `json:"state"`
	GameOver bool    `json:"game_over"`
	Cleared  int     `json:"cleared"`
	Faller   *Faller `json:"faller,omitempty"`
	Grid     *Grid   `json:"grid"`
}
