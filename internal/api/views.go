package api

// FreetView is the client-facing shape of a freet.
type FreetView struct {
	ID           string `json:"_id"`
	Author       string `json:"author"`
	Content      string `json:"content"`
	DateCreated  string `json:"dateCreated"`
	DateModified string `json:"dateModified"`
}

// ReferenceView carries the resolved target of a comment or like. At most one
// of ReferenceFreet and ReferenceComment is set; both are null when the target
// no longer exists.
type ReferenceView struct {
	ReferenceFreet   *FreetView   `json:"reference_freet"`
	ReferenceComment *CommentView `json:"reference_comment"`
	ReferenceMissing bool         `json:"reference_missing"`
}

type CommentView struct {
	ID            string `json:"_id"`
	User          string `json:"user"`
	Content       string `json:"content"`
	DateCommented string `json:"dateCommented"`
	ReferenceID   string `json:"referenceId"`
	IsComment     bool   `json:"isComment"`
	ReferenceView
}

type LikeView struct {
	ID          string `json:"_id"`
	User        string `json:"user"`
	DateLiked   string `json:"dateLiked"`
	ReferenceID string `json:"referenceId"`
	IsComment   bool   `json:"isComment"`
	ReferenceView
}

type PromptResponseView struct {
	ID            string `json:"_id"`
	User          string `json:"user"`
	Content       string `json:"content"`
	DateResponded string `json:"dateResponded"`
	DateModified  string `json:"dateModified"`
}

type UserView struct {
	ID         string `json:"_id"`
	Username   string `json:"username"`
	DateJoined string `json:"dateJoined"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

