package bootstrap_catalog

import reconcilerModels "github.com/m04kA/SMC-ParkingService/internal/service/reconciler/models"

// Request каталог мест: каждая комбинация локации, этажа, ряда и номера
type Request struct {
	Locations []string
	Floors    []int
	Rows      []string
	Numbers   []int
}

// Response итог подготовки каталога
type Response struct {
	Renamed       int      // legacy идентификаторы, получившие префикс этажа
	RenameSkipped []string // legacy идентификаторы, чьё новое имя уже занято
	Created       int      // места, добавленные из каталога
	Report        *reconcilerModels.Report
}
