package nasa

// RoverInfo is the rover metadata the upstream embeds on every photo.
type RoverInfo struct {
	ID          int    `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	LaunchDate  string `json:"launch_date"`
	LandingDate string `json:"landing_date"`
	Status      string `json:"status"`
}

// Camera identifies the camera that took a photo.
type Camera struct {
	ID       int    `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// Photo is one entry of the upstream photos array.
type Photo struct {
	ID        int       `json:"id,omitempty"`
	Sol       int       `json:"sol,omitempty"`
	ImgSrc    string    `json:"img_src"`
	EarthDate string    `json:"earth_date"`
	Camera    *Camera   `json:"camera,omitempty"`
	Rover     RoverInfo `json:"rover"`
}

// PhotosResponse is the body of GET /rovers/{name}/photos.
type PhotosResponse struct {
	Photos []Photo `json:"photos"`
}
