package employee

import "time"

// Employee は社員エンティティです。ID と CreatedAt はデータベースが採番・既定値設定します。
type Employee struct {
	ID        int64
	Name      string
	Email     string
	Country   *string
	Salary    float64
	CreatedAt time.Time
}

// CountryOrEmpty は国が未設定の場合に空文字列を返します。
func (e *Employee) CountryOrEmpty() string {
	if e == nil || e.Country == nil {
		return ""
	}
	return *e.Country
}
