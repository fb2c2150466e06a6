package folder

// Folder groups products of a single user.
type Folder struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	UserID int    `json:"userId"`
}

// ProductFolder links one product to one folder. A pair exists at most once.
type ProductFolder struct {
	ID        int `json:"id"`
	ProductID int `json:"productId"`
	FolderID  int `json:"folderId"`
}
