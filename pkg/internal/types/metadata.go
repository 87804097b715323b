package types

// SetMetadataRequest 设置单个元数据键的值.
type SetMetadataRequest struct {
	Value *string `json:"value"`
}

// MetadataResponse 文档的全部元数据键值对.
type MetadataResponse struct {
	DocumentID string             `json:"document_id"`
	Metadata   map[string]*string `json:"metadata"`
}
