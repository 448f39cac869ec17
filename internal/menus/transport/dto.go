package transport

// Menu is a single menu item as served to clients.
type Menu struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoUrl"`
	Price    int    `json:"price"`
}

// CategoryMenu groups menu items under one display category. The featured
// group uses the fixed id "featured"; every other group's id is the raw
// category value itself.
type CategoryMenu struct {
	ID           string `json:"id"`
	CategoryName string `json:"categoryName"`
	Items        []Menu `json:"items"`
}

// ListQuery carries the optional free-text name filter.
type ListQuery struct {
	Search string `form:"search"`
}

// UploadedImage is the result of storing a menu image: the object path to
// put in a menu row's image_path column, and the public URL it resolves to.
type UploadedImage struct {
	ImagePath string `json:"imagePath"`
	PhotoURL  string `json:"photoUrl"`
}
