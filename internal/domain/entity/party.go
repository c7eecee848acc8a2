package entity

// Party datos de la empresa emisora o del cliente. Todos los campos son
// opcionales; un campo vacío suprime su línea en el documento.
type Party struct {
	Name        string
	Address     string
	Phone       string
	Email       string
	BankName    string
	Account     string // расчётный счёт
	CorrAccount string // корреспондентский счёт
	BIK         string
	INN         string
	KPP         string
	Director    string
}

// IsEmpty indica si no hay ningún dato que mostrar.
func (p Party) IsEmpty() bool {
	return p == Party{}
}
