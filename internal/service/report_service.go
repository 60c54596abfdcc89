package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"englishpath/internal/models"
	"englishpath/internal/validation"
)

// Mailer sends a rendered message
type Mailer interface {
	IsEnabled() bool
	Send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error
}

// ProgressReport is a point-in-time view of a learner's progress
type ProgressReport struct {
	User    models.User               `json:"user"`
	Modules []models.ModuleDescriptor `json:"modules"`
	Summary models.Summary            `json:"summary"`
}

// ReportService builds progress reports and mails them
type ReportService struct {
	progress *ProgressService
	modules  *ModuleService
	mailer   Mailer
	baseURL  string
}

// NewReportService creates a new report service
func NewReportService(progress *ProgressService, modules *ModuleService, mailer Mailer, baseURL string) *ReportService {
	return &ReportService{
		progress: progress,
		modules:  modules,
		mailer:   mailer,
		baseURL:  baseURL,
	}
}

// Build assembles the report for one user
func (s *ReportService) Build(userID int64) (*ProgressReport, error) {
	user, err := s.progress.CurrentUser(userID)
	if err != nil {
		return nil, err
	}
	modules, err := s.modules.ComputeModuleList(userID)
	if err != nil {
		return nil, err
	}
	summary, err := s.progress.Summary(userID)
	if err != nil {
		return nil, err
	}
	return &ProgressReport{User: user, Modules: modules, Summary: summary}, nil
}

// Send e-mails the user's progress report to toEmail
func (s *ReportService) Send(ctx context.Context, userID int64, toEmail string) error {
	toEmail = strings.TrimSpace(toEmail)
	if err := validation.ValidateEmail(toEmail); err != nil {
		return err
	}
	if !s.mailer.IsEnabled() {
		return ErrEmailDisabled
	}

	report, err := s.Build(userID)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("%s's English progress: %d%%", report.User.DisplayName, report.User.Progress)
	return s.mailer.Send(ctx, toEmail, subject, renderReportHTML(report, s.baseURL), renderReportText(report, s.baseURL))
}

func renderReportText(r *ProgressReport, baseURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", r.User.DisplayName)
	fmt.Fprintf(&b, "Overall progress: %d%%\n", r.User.Progress)
	fmt.Fprintf(&b, "Points: %d\n", r.User.Points)
	fmt.Fprintf(&b, "Completed modules: %d\n", r.Summary.CompletedModules)
	fmt.Fprintf(&b, "Completed exercises: %d\n", r.Summary.CompletedExercises)
	fmt.Fprintf(&b, "Practice streak: %d\n\n", r.Summary.Streak)
	for _, m := range r.Modules {
		fmt.Fprintf(&b, "- %s: %d%% (%s)\n", m.Title, m.Progress, m.Status)
	}
	if baseURL != "" {
		fmt.Fprintf(&b, "\nKeep learning: %s%s\n", baseURL, r.User.LastModule)
	}
	b.WriteString("\n---\nThis is an automated email from EnglishPath. Please do not reply.\n")
	return b.String()
}

func renderReportHTML(r *ProgressReport, baseURL string) string {
	var rows strings.Builder
	for _, m := range r.Modules {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%d%%</td><td>%s</td></tr>\n",
			html.EscapeString(m.Title), m.Progress, html.EscapeString(string(m.Status)))
	}

	link := ""
	if baseURL != "" {
		href := html.EscapeString(baseURL + r.User.LastModule)
		link = fmt.Sprintf(`<p style="text-align: center;"><a href="%s" class="button">Keep learning</a></p>`, href)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #4a90e2; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.button { display: inline-block; padding: 12px 30px; background-color: #4a90e2; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
		td { padding: 4px 12px; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Progress report</h1>
		</div>
		<div class="content">
			<p>Hi %s,</p>
			<p>Overall progress: <strong>%d%%</strong>, points: <strong>%d</strong>.</p>
			<p>Completed modules: %d, completed exercises: %d, practice streak: %d.</p>
			<table>
%s			</table>
			%s
		</div>
	</div>
</body>
</html>
`, html.EscapeString(r.User.DisplayName), r.User.Progress, r.User.Points,
		r.Summary.CompletedModules, r.Summary.CompletedExercises, r.Summary.Streak,
		rows.String(), link)
}
