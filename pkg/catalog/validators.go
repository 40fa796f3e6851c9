package catalog

import "mime/multipart"

type SyncPayload struct {
	Items        []Row  `json:"items" validate:"required,min=1"`
	UpdateTarget string `json:"update_target" default:"both" validate:"oneof=store catalog both supabase stripe"`
}

type UploadPayload struct {
	FormFiles    map[string]*multipart.FileHeader `json:"-"`
	Items        []Row                            `json:"items,omitempty"`
	Sync         bool                             `form:"sync" json:"sync,omitempty"`
	UpdateTarget string                           `form:"update_target" json:"update_target,omitempty" default:"both" validate:"oneof=store catalog both supabase stripe"`
}
