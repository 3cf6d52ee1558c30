package tray

import "time"

// Slot names the two file positions the tray holds.
type Slot string

const (
	SlotSoilReport Slot = "soil_report"
	SlotCropImage  Slot = "crop_image"
)

// FileRef points at an uploaded file in object storage. It is the handle the
// upload step leaves behind so the analyze step can reuse the file without a
// second upload.
type FileRef struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	MimeType   string    `json:"mimeType"`
	SizeBytes  int64     `json:"sizeBytes"`
	StorageKey string    `json:"-"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Tray holds the two optional file slots for one owner. Either slot may be
// nil; they are fully independent of each other.
type Tray struct {
	SoilReport *FileRef `json:"soilReport"`
	CropImage  *FileRef `json:"cropImage"`
}
