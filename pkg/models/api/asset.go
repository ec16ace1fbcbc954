package api

type SearchField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type SearchFilter struct {
	Fields []SearchField `json:"fields"`
}

type AssetSearchRequest struct {
	Filter SearchFilter `json:"filter"`
}

type ProtectedAsset struct {
	ID             string `json:"id"`
	EntityID       string `json:"entityId"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	CloudAccountID string `json:"cloudAccountId"`
	Platform       string `json:"platform"`
}

type AssetSearchResponse struct {
	Assets     []ProtectedAsset `json:"assets"`
	TotalCount int              `json:"totalCount"`
}

func NewAssetSearchRequest(cloudAccountID, name string) AssetSearchRequest {
	return AssetSearchRequest{
		Filter: SearchFilter{
			Fields: []SearchField{
				{Name: "cloudAccountId", Value: cloudAccountID},
				{Name: "name", Value: name},
			},
		},
	}
}
