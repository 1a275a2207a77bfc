package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/Freeeeeet/classroom_bot/internal/api"
	"github.com/Freeeeeet/classroom_bot/internal/export"
	"github.com/Freeeeeet/classroom_bot/internal/model"
	"github.com/Freeeeeet/classroom_bot/internal/render"
	"github.com/Freeeeeet/classroom_bot/internal/schedule"
)

// Context общие параметры подкоманд
type Context struct {
	Entries   []model.ScheduleEntry
	Location  *time.Location
	WeekStart time.Weekday
	Date      time.Time
	Now       time.Time
}

var CLI struct {
	Input     string `help:"JSON with schedule entries in backend format (array or {data}/{items}). Built-in sample when empty." type:"existingfile"`
	Date      string `help:"Any date inside the week or month to show (YYYY-MM-DD). Defaults to today."`
	Timezone  string `help:"IANA timezone." default:"Asia/Ho_Chi_Minh"`
	WeekStart string `help:"First day of week." enum:"sunday,monday" default:"sunday"`

	List  ListCmd  `cmd:"" help:"Print occurrences of the week." default:"1"`
	Image ImageCmd `cmd:"" help:"Render the week as PNG."`
	Ics   IcsCmd   `cmd:"" help:"Export the month as iCalendar."`
}

type ListCmd struct {
	Month bool `help:"Show the month view window instead of the week."`
}

func (c *ListCmd) Run(ctx *Context) error {
	start, end := schedule.WeekWindow(ctx.Date, ctx.WeekStart)
	if c.Month {
		start, end = schedule.MonthWindow(ctx.Date, ctx.WeekStart)
	}

	occurrences, err := schedule.Expand(ctx.Entries, start, end)
	if err != nil {
		return err
	}
	schedule.SortOccurrences(occurrences)

	for _, se := range schedule.Validate(ctx.Entries) {
		fmt.Fprintf(os.Stderr, "skipped: %v\n", &se)
	}

	fmt.Printf("%s .. %s: %d occurrences\n", start.Format(time.DateOnly), end.Format(time.DateOnly), len(occurrences))
	for _, occ := range occurrences {
		fmt.Printf("%s  %s-%s  %s\n",
			occ.Start.Format("Mon 02.01"), occ.Start.Format("15:04"), occ.End.Format("15:04"), occ.Title)
	}
	return nil
}

type ImageCmd struct {
	Output string `help:"Output PNG file." short:"o" default:"week.png"`
}

func (c *ImageCmd) Run(ctx *Context) error {
	start, end := schedule.WeekWindow(ctx.Date, ctx.WeekStart)
	occurrences, err := schedule.Expand(ctx.Entries, start, end)
	if err != nil {
		return err
	}

	data, err := render.WeekImage(start, occurrences, ctx.Now)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.Output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", c.Output, err)
	}

	fmt.Printf("✅ %s: %d occurrences, %d bytes\n", c.Output, len(occurrences), len(data))
	return nil
}

type IcsCmd struct {
	Output string `help:"Output .ics file." short:"o" default:"schedule.ics"`
}

func (c *IcsCmd) Run(ctx *Context) error {
	start, end := schedule.MonthWindow(ctx.Date, ctx.WeekStart)
	out, err := export.Calendar(ctx.Entries, start, end, ctx.Now)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.Output, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", c.Output, err)
	}

	fmt.Printf("✅ %s written\n", c.Output)
	return nil
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("schedule_preview"),
		kong.Description("Expand a weekly class schedule and preview it as text, PNG or iCalendar."),
		kong.UsageOnError(),
	)

	appCtx, err := buildContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := kctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildContext() (*Context, error) {
	loc, err := time.LoadLocation(CLI.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}

	now := time.Now().In(loc)
	date := now
	if CLI.Date != "" {
		date, err = time.ParseInLocation(time.DateOnly, CLI.Date, loc)
		if err != nil {
			return nil, fmt.Errorf("parse date: %w", err)
		}
	}

	weekStart := time.Sunday
	if CLI.WeekStart == "monday" {
		weekStart = time.Monday
	}

	body := []byte(sampleSchedule)
	if CLI.Input != "" {
		body, err = os.ReadFile(CLI.Input)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
	}

	entries, dropped, err := api.DecodeSchedule(body)
	if err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}
	if dropped > 0 {
		fmt.Fprintf(os.Stderr, "⚠️  dropped %d invalid records\n", dropped)
	}

	return &Context{
		Entries:   entries,
		Location:  loc,
		WeekStart: weekStart,
		Date:      date,
		Now:       now,
	}, nil
}

const sampleSchedule = `[
  {"classId": "c1", "className": "IELTS 6.5", "subject": "English", "teacher": "Nguyễn Văn A",
   "timeSlots": [{"day": "Thứ 2", "slot": "18:00-19:30"}, {"day": "Thứ 4", "slot": "18:00-19:30"}]},
  {"classId": "c2", "className": "Toán 10", "subject": "Toán", "teacher": "Trần Thị B",
   "timeSlots": [{"day": "Thứ 3", "slot": "07:30-09:00"}, {"day": "Thứ 5", "slot": "07:30-09:00"}]},
  {"classId": "c3", "className": "Vật lý 11", "subject": "Vật lý", "teacher": "Lê C",
   "timeSlots": [{"day": "Thứ 7", "slot": "09:00-11:00"}, {"day": "Chủ nhật", "slot": "14:00-16:00"}]}
]`
