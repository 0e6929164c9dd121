package connection

// Incoming payloads arrive as map[string]any and are decoded
// with mapstructure, hence the double tags.

type ReqNewGame struct {
	Rows int `json:"rows" mapstructure:"rows"`
	Cols int `json:"cols" mapstructure:"cols"`
}

type ReqShoot struct {
	Row int `json:"row" mapstructure:"row"`
	Col int `json:"col" mapstructure:"col"`
}
