package entity

type Bowler struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
