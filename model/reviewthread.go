package model

// ReviewNode is a review together with its reply tree, as sent to the client
type ReviewNode struct {
	Review
	Username string       `json:"username"`
	Replies  []ReviewNode `json:"replies"`
}

type Pagination struct {
	TotalComments int `json:"totalComments"`
	TotalPages    int `json:"totalPages"`
	CurrentPage   int `json:"currentPage"`
	PerPage       int `json:"perPage"`
}
