package bulk

type ImportResponse struct {
	Kind       string `json:"kind"`
	Received   int    `json:"received"`
	Superseded int    `json:"superseded"`
	Upserted   int    `json:"upserted"`
}

// RowError is the details payload of an invalid row.
type RowError struct {
	Line   int    `json:"line"`
	Column string `json:"column,omitempty"`
	Reason string `json:"reason"`
}
