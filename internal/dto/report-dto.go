package dto

// FleetSummaryDTO is one row of the fleet status report.
type FleetSummaryDTO struct {
	TerminalID   string `json:"terminal_id"`
	TerminalName string `json:"terminal_name"`
	Drivers      int    `json:"drivers"`
	Trucks       int    `json:"trucks"`
	Trailers     int    `json:"trailers"`
	ActiveLoads  int    `json:"active_loads"`
}

type LoadActivityDTO struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}
