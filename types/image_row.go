package types

// ImageRow is one row of the images table.
type ImageRow struct {
	Id          string  `json:"id"`
	ImageTitle  string  `json:"image_title"`
	CreatorName *string `json:"creator_name"`
	ImageType   *string `json:"image_type,omitempty"`
	ImageUrl    string  `json:"image_url"`
}
