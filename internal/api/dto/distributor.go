package dto

type DistributorResponse struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type ListDistributorsResponse struct {
	Distributors []DistributorResponse `json:"distributors"`
}
