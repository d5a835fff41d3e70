package model

// JobPage is the response body of the job listing endpoints
type JobPage struct {
	Message     string        `json:"message"`
	Data        []ShipmentJob `json:"data"`
	Total       int           `json:"total"`
	CurrentPage int           `json:"currentPage"`
	TotalPages  int           `json:"totalPages"`
}

// JobUpdateEvent is published by ingestion whenever jobs of a year change
type JobUpdateEvent struct {
	Partition string `json:"partition"`
	Year      string `json:"year"`
}
