package backend

type Conf struct {
	Host     string `json:"host"`
	ClientID string `json:"client_id"` // ID of this App as a Client of the restaurant backend
}
