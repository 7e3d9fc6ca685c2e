package reaction

type StatusReq struct {
	Status string `json:"status" validate:"required,oneof=like dislike heart laugh sad angry"`
}

type ListResp struct {
	Data []Reaction `json:"data"`
}
