package model

// DashboardStats is the aggregate counter block the backend returns
// for the signed-in user's dashboard.
type DashboardStats struct {
	TotalTools    int `json:"totalTools"`
	UserTools     int `json:"userTools"`
	CartTools     int `json:"cartTools"`
	UserCount     int `json:"userCount"`
	ProblemCount  int `json:"problemCount"`
	SolutionCount int `json:"solutionCount"`
}
