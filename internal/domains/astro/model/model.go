package model

// AstroResponse mirrors the open-notify astros.json payload.
type AstroResponse struct {
	Message string       `json:"message"`
	Number  int          `json:"number"`
	People  []Assignment `json:"people"`
}

// Assignment is one person currently in space and their craft.
type Assignment struct {
	Name  string `json:"name"`
	Craft string `json:"craft"`
}
