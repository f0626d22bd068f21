package dashboard

// CountersResponse is the live headcount snapshot published on the
// dashboard counters topic and returned by the REST endpoint.
type CountersResponse struct {
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	HalfDay int    `json:"half_day"`
	OnLeave int    `json:"on_leave"`
	WFH     int    `json:"wfh"`
	Total   int    `json:"total"`
	AsOf    string `json:"as_of"`
}
