package handle

import (
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/apperr"
	"github.com/yeisme/docvault/pkg/internal/service"
)

// metaFieldPrefix 表单字段前缀，meta_xxx 成为元数据键 xxx.
const metaFieldPrefix = "meta_"

// UploadDocument 多部分表单上传：file 必填；document_id 为空时用 title/category
// 新建文档，否则向该文档追加版本.元数据来自 metadata JSON 字段与 meta_* 表单字段.
func UploadDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		writeError(c, apperr.Validation("file field is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		writeError(c, apperr.Storage("open uploaded file", err))
		return
	}
	defer func() { _ = file.Close() }()

	metadata, err := parseUploadMetadata(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var category *string
	if v := c.PostForm("category"); v != "" {
		category = &v
	}

	in := &service.UploadInput{
		DocumentID:  c.PostForm("document_id"),
		Title:       c.PostForm("title"),
		Category:    category,
		FileName:    fileHeader.Filename,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Reader:      file,
		Metadata:    metadata,
	}

	svc := service.NewDocumentService(c.Request.Context())

	resp, err := svc.Upload(c.Request.Context(), principalFrom(c), in)
	if err != nil {
		writeError(c, err)
		return
	}

	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}

	c.JSON(status, resp)
}

// parseUploadMetadata 合并 metadata JSON 对象与 meta_* 表单字段，后者优先.
func parseUploadMetadata(c *gin.Context) (map[string]*string, error) {
	metadata := make(map[string]*string)

	if raw := c.PostForm("metadata"); raw != "" {
		var obj map[string]*string
		if err := sonic.Unmarshal([]byte(raw), &obj); err != nil {
			return nil, apperr.Validation("metadata must be a JSON object of string values")
		}

		for k, v := range obj {
			metadata[k] = v
		}
	}

	form, err := c.MultipartForm()
	if err != nil {
		return metadata, nil
	}

	for field, values := range form.Value {
		if !strings.HasPrefix(field, metaFieldPrefix) || len(values) == 0 {
			continue
		}

		key := strings.TrimPrefix(field, metaFieldPrefix)
		if key == "" {
			continue
		}

		v := values[0]
		metadata[key] = &v
	}

	return metadata, nil
}
