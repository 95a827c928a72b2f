package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jai-S-Rathore/healthcheck/internal/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const reportSubject = "Your 30-day calorie report"

type ReportMailer interface {
	SendReport(ctx context.Context, to string, report *models.Report) error
}

type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SESReportMailer struct {
	client sesAPI
	sender string
}

func NewSESReportMailer(ctx context.Context, region, sender string) (*SESReportMailer, error) {
	opts := []func(*config.LoadOptions) error{}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SESReportMailer{client: ses.NewFromConfig(cfg), sender: sender}, nil
}

func (m *SESReportMailer) SendReport(ctx context.Context, to string, report *models.Report) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(reportSubject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(FormatReportText(report)),
				},
			},
		},
		Source: aws.String(m.sender),
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("ses send email: %w", err)
	}
	return nil
}

// FormatReportText renders the report as the plain-text body of the e-mail.
func FormatReportText(report *models.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Calorie report for the past %s\n\n", report.Period)
	fmt.Fprintf(&b, "Total meals: %d\n", report.TotalMeals)
	fmt.Fprintf(&b, "Total calories: %d\n", report.TotalCalories)
	fmt.Fprintf(&b, "Average calories per day: %d\n", report.AvgCaloriesPerDay)

	b.WriteString("\nMeals by type:\n")
	for _, foodType := range models.FoodTypes {
		if count := report.MealBreakdown[foodType]; count > 0 {
			fmt.Fprintf(&b, "  %s: %d\n", foodType, count)
		}
	}

	if len(report.RecentMeals) > 0 {
		b.WriteString("\nRecent meals:\n")
		for _, meal := range report.RecentMeals {
			fmt.Fprintf(&b, "  %s  %-9s %s (%d kcal)\n",
				meal.CreatedAt.Format("2006-01-02 15:04"),
				meal.FoodType,
				meal.FoodName,
				meal.Calories,
			)
		}
	}
	return b.String()
}
