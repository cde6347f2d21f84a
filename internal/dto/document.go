package dto

// ── 附件 / 上传模块 DTO ──

// UploadResponse 文件上传结果
type UploadResponse struct {
	URL              string `json:"url"`
	Filename         string `json:"filename"`
	OriginalFilename string `json:"original_filename"`
	FileSize         int64  `json:"file_size"`
}

// DocumentResponse 附件元数据响应
type DocumentResponse struct {
	ID               string `json:"id"`
	Filename         string `json:"filename"`
	OriginalFilename string `json:"original_filename"`
	FileType         string `json:"file_type"`
	FileSize         int64  `json:"file_size"`
	Description      string `json:"description,omitempty"`
	URL              string `json:"url"`
	CreatedAt        string `json:"created_at"`
}
