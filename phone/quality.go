package phone

import (
	"github.com/nyaruka/phonenumbers"
)

// Plausible проверяет номер по метаданным libphonenumber. Используется
// только для предупреждений в отчёте: строгий формат +7XXXXXXXXXX
// ничего не говорит о том, существует ли такой диапазон.
func Plausible(e164 string) bool {
	num, err := phonenumbers.Parse(e164, "RU")
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(num)
}

// Describe возвращает тип номера по метаданным: mobile, fixed, toll_free и т.п.
func Describe(e164 string) string {
	num, err := phonenumbers.Parse(e164, "RU")
	if err != nil {
		return "unknown"
	}
	switch phonenumbers.GetNumberType(num) {
	case phonenumbers.MOBILE:
		return "mobile"
	case phonenumbers.FIXED_LINE:
		return "fixed"
	case phonenumbers.FIXED_LINE_OR_MOBILE:
		return "fixed_or_mobile"
	case phonenumbers.TOLL_FREE:
		return "toll_free"
	case phonenumbers.VOIP:
		return "voip"
	}
	return "unknown"
}
