package group

type CreateReq struct {
	Name string `json:"name" validate:"required"`
}

type RenameReq struct {
	Name string `json:"name" validate:"required"`
}

type MembersReq struct {
	Members []string `json:"members" validate:"required"`
}

// GroupResp is the read shape: members come back as usernames, not ids.
type GroupResp struct {
	ID      uint     `json:"id"`
	Name    string   `json:"name"`
	Owner   uint     `json:"owner"`
	Members []string `json:"members"`
}

type MembersResp struct {
	Status string `json:"status"`
}
