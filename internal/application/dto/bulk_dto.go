package dto

// BulkUploadRequest cuerpo JSON alternativo de carga-masiva.
type BulkUploadRequest struct {
	Contenido string `json:"contenido"`
}

// BulkRowError fila rechazada (numeración desde 1, contando el encabezado).
type BulkRowError struct {
	Fila  int    `json:"fila"`
	Error string `json:"error"`
}

// BulkUploadResponse conteo de la carga; nada se persiste.
type BulkUploadResponse struct {
	Message        string         `json:"message"`
	TotalFilas     int            `json:"total_filas"`
	FilasValidas   int            `json:"filas_validas"`
	FilasInvalidas int            `json:"filas_invalidas"`
	Errores        []BulkRowError `json:"errores"`
}
