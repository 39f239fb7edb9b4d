package model

// JokeResponse mirrors the icndb random-joke payload.
type JokeResponse struct {
	Type  string    `json:"type"`
	Value JokeValue `json:"value"`
}

type JokeValue struct {
	ID         int      `json:"id"`
	Joke       string   `json:"joke"`
	Categories []string `json:"categories"`
}
