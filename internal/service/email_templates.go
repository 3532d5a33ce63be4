package service

import "fmt"

func welcomeEmailTemplate(name, dashboardURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Hi %s,

Your account is ready. Set your first goal and start tracking your progress:

%s

Best,
The %s Team`, name, dashboardURL, appName)

	return subject, body
}

func passwordChangedEmailTemplate(name, appName string) (string, string) {
	subject := fmt.Sprintf("Your %s password was changed", appName)
	body := fmt.Sprintf(`Hi %s,

The password for your %s account was just changed.

If this wasn't you, contact our support team immediately.

Best,
The %s Team`, name, appName, appName)

	return subject, body
}
