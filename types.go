package main

import "agrokg/ndvi"

// Request/response DTOs. Keep them minimal and explicit.

type analyzeReq struct {
	Polygon ndvi.Polygon `json:"polygon"`
	Crop    string       `json:"crop"`
	Period  int          `json:"period"`
}

type errorResp struct {
	Error string `json:"error"`
}

type healthResp struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
