package seeders

import "clinical-service/internal/entities"

// Contraseña de todos los usuarios de demostración.
const demoPassword = "Demo1234!"

var usuariosData = []struct {
	Nombre string
	Email  string
	Rol    string
}{
	{Nombre: "Administración Clínica", Email: "admin@clinica.test", Rol: entities.RolAdmin},
	{Nombre: "Supervisora Biomédica", Email: "supervisora@clinica.test", Rol: entities.RolSupervisor},
	{Nombre: "Carlos Técnico", Email: "carlos@clinica.test", Rol: entities.RolTecnico},
	{Nombre: "Daniela Técnica", Email: "daniela@clinica.test", Rol: entities.RolTecnico},
}

var equiposData = []struct {
	Nombre    string
	Serie     string
	Marca     string
	Modelo    string
	Ubicacion string
	Latitud   float64
	Longitud  float64
}{
	{"Monitor multiparámetro", "MON-2201", "Mindray", "uMEC 12", "UCI Adultos, box 3", -33.44225, -70.65390},
	{"Ventilador mecánico", "VEN-1107", "Dräger", "Evita V300", "UCI Adultos, box 5", -33.44225, -70.65390},
	{"Electrocardiógrafo", "ECG-0456", "GE", "MAC 2000", "Urgencias", -33.44310, -70.65270},
	{"Bomba de infusión", "BIN-3390", "B. Braun", "Infusomat Space", "Pabellón 2", -33.44180, -70.65455},
	{"Desfibrilador", "DEF-0782", "Zoll", "R Series", "Urgencias", -33.44310, -70.65270},
	{"Autoclave", "AUT-0019", "Tuttnauer", "3870ELV", "Central de esterilización", -33.44402, -70.65318},
}

var ordenesData = []struct {
	Serie       string
	Tecnico     string
	Descripcion string
	Prioridad   string
}{
	{"MON-2201", "carlos@clinica.test", "Mantención preventiva semestral", "media"},
	{"VEN-1107", "carlos@clinica.test", "Alarma de presión intermitente", "critica"},
	{"ECG-0456", "daniela@clinica.test", "Calibración anual", "baja"},
	{"BIN-3390", "daniela@clinica.test", "Error de oclusión recurrente", "alta"},
}
