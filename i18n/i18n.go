package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var Locale = "en"

var printer = message.NewPrinter(language.English)

func L(key string, args ...any) string {
	msg, ok := translations[Locale][key]

	if !ok {
		msg = EN[key]
	}

	return fmt.Sprintf(msg, args...)
}

func SetLocale(locale string) error {
	_, exist := translations[locale]

	if !exist {
		return fmt.Errorf("unsupported locale %s", locale)
	}

	Locale = locale
	printer = message.NewPrinter(language.Make(locale))

	return nil
}

// FormatInt groups the digits of n the way the current locale does.
func FormatInt(n int) string {
	return printer.Sprintf("%d", n)
}
