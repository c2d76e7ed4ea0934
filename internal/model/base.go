// Package model holds the data shapes shared by the repository,
// service and handler layers. Sub-packages own one resource each.
package model

// PaginatedResponse is the envelope of every list endpoint.
//
// Next and Previous are absolute URLs of the neighbouring pages,
// null when there is none.
type PaginatedResponse[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}
