package sports

type Sport struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	IconURL *string `json:"iconUrl"`
}

type CreateSportRequest struct {
	Name    string  `json:"name"`
	IconURL *string `json:"iconUrl,omitempty"`
}

type UpdateSportRequest struct {
	Name    *string `json:"name,omitempty"`
	IconURL *string `json:"iconUrl,omitempty"`
}
