package types

// AddTagsRequest 为文档批量打标签.
type AddTagsRequest struct {
	DocumentID string   `json:"document_id" rule:"required,uuid"`
	Tags       []string `json:"tags"        rule:"required,min=1"`
}

// TagInfo 单个标签的处理结果；TagCreated 表示本次请求新建了该标签.
type TagInfo struct {
	TagID      string `json:"tag_id"`
	TagName    string `json:"tag_name"`
	TagCreated bool   `json:"tag_created"`
}

// AddTagsResponse 打标签结果.
type AddTagsResponse struct {
	DocumentID string    `json:"document_id"`
	Tags       []TagInfo `json:"tags"`
	Total      int       `json:"total"`
}
