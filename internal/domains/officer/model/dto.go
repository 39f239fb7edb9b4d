package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// OfficerRequest is the payload for creating officers.
type OfficerRequest struct {
	Rank      string `json:"rank"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (r OfficerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rank,
			validation.Required.Error("rank is required"),
			validation.By(func(value interface{}) error {
				if !IsValidRank(Rank(value.(string))) {
					return validation.NewError("validation_rank", "rank is not a known rank")
				}
				return nil
			}),
		),
		validation.Field(&r.FirstName,
			validation.Required.Error("first name is required"),
			validation.Length(1, 50),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("last name is required"),
			validation.Length(1, 50),
		),
	)
}

func (r OfficerRequest) RejectedValues() map[string]interface{} {
	return map[string]interface{}{
		"rank":      r.Rank,
		"firstName": r.FirstName,
		"lastName":  r.LastName,
	}
}

func (r OfficerRequest) ToEntity() Officer {
	return Officer{
		Rank:      Rank(r.Rank),
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

// OfficerResponse is the wire shape for officers.
type OfficerResponse struct {
	ID        int64  `json:"id"`
	Rank      string `json:"rank"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (o Officer) ToResponse() OfficerResponse {
	return OfficerResponse{
		ID:        o.ID,
		Rank:      string(o.Rank),
		FirstName: o.FirstName,
		LastName:  o.LastName,
	}
}

func ToResponseList(officers []Officer) []OfficerResponse {
	responses := make([]OfficerResponse, len(officers))
	for i, o := range officers {
		responses[i] = o.ToResponse()
	}
	return responses
}
