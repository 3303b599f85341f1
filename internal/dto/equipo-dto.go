package dto

type CreateEquipoDTO struct {
	Nombre    string   `json:"nombre" validate:"required,max=200"`
	Serie     string   `json:"serie" validate:"required,serial"`
	Marca     string   `json:"marca" validate:"omitempty,max=100"`
	Modelo    string   `json:"modelo" validate:"omitempty,max=100"`
	Ubicacion string   `json:"ubicacion" validate:"omitempty,max=200"`
	Latitud   *float64 `json:"latitud" validate:"required,latitude"`
	Longitud  *float64 `json:"longitud" validate:"required,longitude"`
}

type UpdateEquipoDTO struct {
	Nombre    *string  `json:"nombre,omitempty" validate:"omitempty,max=200"`
	Serie     *string  `json:"serie,omitempty" validate:"omitempty,serial"`
	Marca     *string  `json:"marca,omitempty" validate:"omitempty,max=100"`
	Modelo    *string  `json:"modelo,omitempty" validate:"omitempty,max=100"`
	Ubicacion *string  `json:"ubicacion,omitempty" validate:"omitempty,max=200"`
	Latitud   *float64 `json:"latitud,omitempty" validate:"omitempty,latitude"`
	Longitud  *float64 `json:"longitud,omitempty" validate:"omitempty,longitude"`
	Estado    *string  `json:"estado,omitempty" validate:"omitempty,oneof=operativo en_mantenimiento dado_de_baja"`
}
