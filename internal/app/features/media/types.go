// internal/app/features/media/types.go
package media

type createInput struct {
	Title        string   `json:"title" validate:"required,max=200"`
	Description  string   `json:"description"`
	Type         string   `json:"type" validate:"required,oneof=video audio image document sermon"`
	URL          string   `json:"url" validate:"required,url"`
	ThumbnailURL string   `json:"thumbnailUrl" validate:"omitempty,url"`
	Speaker      string   `json:"speaker"`
	Tags         []string `json:"tags"`
	IsPublic     bool     `json:"isPublic"`
}

// updateInput is replace-if-present. tags replace the stored list when the
// key is present, even if empty.
type updateInput struct {
	Title        string    `json:"title" validate:"omitempty,max=200"`
	Description  string    `json:"description"`
	Type         string    `json:"type" validate:"omitempty,oneof=video audio image document sermon"`
	URL          string    `json:"url" validate:"omitempty,url"`
	ThumbnailURL string    `json:"thumbnailUrl" validate:"omitempty,url"`
	Speaker      string    `json:"speaker"`
	Tags         *[]string `json:"tags"`
	IsPublic     *bool     `json:"isPublic"`
}
