package email

import "fmt"

// EditLinkSubject is the subject line for registration confirmation emails.
const EditLinkSubject = "Ihre Anmeldung zum SCL Hallenmehrkampf - Bearbeitungslink"

// EditLink builds the public URL under which a registration can be edited.
func EditLink(baseURL string, seasonYear int, token string) string {
	return fmt.Sprintf("%s/%d/edit/%s", baseURL, seasonYear, token)
}

// EditLinkHTML renders the HTML body of the confirmation email containing the edit link.
func EditLinkHTML(editLink string) string {
	return fmt.Sprintf(`
    <h1>Anmeldung SCL Hallenmehrkampf</h1>
    <p>Vielen Dank für Ihre Anmeldung.</p>
    <p>Über den folgenden Link können Sie Ihre Anmeldung jederzeit bearbeiten:</p>
    <p>
      <a href="%[1]s">%[1]s</a>
    </p>
    <p>Falls der Link nicht klickbar ist, kopieren Sie ihn bitte in die Adresszeile Ihres Browsers.</p>
  `, editLink)
}
