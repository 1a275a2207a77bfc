package render

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image/color"
	"sort"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/Freeeeeet/classroom_bot/internal/model"
)

// FontStyle стиль шрифта
type FontStyle string

const (
	FontStyleDefault FontStyle = ""
	FontStyleMedium  FontStyle = "medium"
	FontStyleBold    FontStyle = "bold"
)

// Размеры и отступы
const (
	imageWidth       = 1400
	imageHeight      = 900
	headerHeight     = 100
	leftLabelsWidth  = 80
	legendWidth      = 160
	dayPaddingX      = 6
	minSlotHeight    = 8.0
	slotBorderRadius = 6.0
	shadowOffset     = 3.0
	totalDaysInWeek  = 7
	hourPaddingTop   = 1
	hourPaddingBot   = 1
	defaultMinHour   = 7
	defaultMaxHour   = 21
	maxLegendItems   = 8
)

// Размеры шрифтов
const (
	titleFontSize      = 25.0
	dayFontSize        = 24.0
	hourLabelFontSize  = 16.0
	slotTimeFontSize   = 15.0
	slotTitleFontSize  = 13.0
	legendItemFontSize = 12.0
)

// Цветовая схема
var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	textColor        = color.RGBA{80, 85, 90, 220}
	hourLabelColor   = color.RGBA{110, 115, 120, 200}
	hourLineColor    = color.NRGBA{150, 150, 150, 255}
	todayBgColor     = color.NRGBA{255, 99, 71, 90}
	evenDayColor     = color.NRGBA{240, 240, 240, 255}
	oddDayColor      = color.NRGBA{225, 225, 225, 255}
	currentTimeColor = color.NRGBA{255, 80, 80, 200}

	pastSlotColor   = color.RGBA{190, 190, 190, 200}
	slotTextColor   = color.RGBA{20, 24, 28, 230}
	slotShadowColor = color.RGBA{0, 0, 0, 20}
	legendItemColor = color.RGBA{70, 74, 78, 220}

	// цвета предметов, выбираются по хешу названия
	subjectPalette = []color.RGBA{
		{129, 140, 248, 230}, // indigo
		{52, 211, 153, 230},  // emerald
		{251, 191, 36, 230},  // amber
		{244, 114, 182, 230}, // pink
		{56, 189, 248, 230},  // sky
		{167, 139, 250, 230}, // violet
		{251, 146, 60, 230},  // orange
		{45, 212, 191, 230},  // teal
	}
)

type hourRange struct {
	start int
	end   int
	total int
}

var (
	fontsOnce   sync.Once
	parsedFonts map[FontStyle]*opentype.Font
)

func parseFonts() {
	parsedFonts = make(map[FontStyle]*opentype.Font)
	for style, data := range map[FontStyle][]byte{
		FontStyleDefault: goregular.TTF,
		FontStyleMedium:  gomedium.TTF,
		FontStyleBold:    gobold.TTF,
	} {
		if f, err := opentype.Parse(data); err == nil {
			parsedFonts[style] = f
		}
	}
}

// loadFont ставит шрифт нужного стиля или basicfont, если Go-шрифт не разобрался
func loadFont(dc *gg.Context, size float64, style FontStyle) {
	fontsOnce.Do(parseFonts)

	if f, ok := parsedFonts[style]; ok {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// WeekImage рисует PNG недели, начинающейся с weekStart (7 дней).
// Занятия вне недели игнорируются, прошедшие занятия серые.
func WeekImage(weekStart time.Time, occurrences []model.CalendarOccurrence, now time.Time) ([]byte, error) {
	loc := weekStart.Location()
	start := normalizeToDay(weekStart)
	end := start.AddDate(0, 0, totalDaysInWeek)
	now = now.In(loc)
	today := normalizeToDay(now)
	highlightToday := !today.Before(start) && today.Before(end)

	byDay := groupByDay(occurrences, start, end)
	hours := calculateHourRange(byDay)

	dc := createCanvas()
	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / totalDaysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, start, end.AddDate(0, 0, -1))
	drawHourLabels(dc, hours, cellHeight)

	day := start
	for i := 0; i < totalDaysInWeek; i++ {
		x := float64(leftLabelsWidth + i*dayWidth)
		y := float64(headerHeight)
		isToday := highlightToday && day.Equal(today)

		drawDayBackground(dc, x, y, dayWidth, dayHeight, i, isToday)
		drawDayHeader(dc, day, x, y, dayWidth)
		drawHourLines(dc, x, y, dayWidth, hours, cellHeight)
		for _, occ := range byDay[day.Format(time.DateOnly)] {
			drawOccurrence(dc, occ, now, x, y, dayWidth, hours, cellHeight)
		}
		day = day.AddDate(0, 0, 1)
	}

	if highlightToday {
		drawCurrentTimeLine(dc, now, hours, cellHeight, dayWidth)
	}
	drawLegend(dc, occurrences, dayWidth)

	return encodeImage(dc)
}

func normalizeToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// groupByDay группирует занятия недели по дате (ключ 2006-01-02 в поясе недели)
func groupByDay(occurrences []model.CalendarOccurrence, start, end time.Time) map[string][]model.CalendarOccurrence {
	byDay := make(map[string][]model.CalendarOccurrence)
	for _, occ := range occurrences {
		s := occ.Start.In(start.Location())
		if s.Before(start) || !s.Before(end) {
			continue
		}
		key := s.Format(time.DateOnly)
		byDay[key] = append(byDay[key], occ)
	}
	return byDay
}

// calculateHourRange определяет диапазон часов по занятиям недели
func calculateHourRange(byDay map[string][]model.CalendarOccurrence) hourRange {
	minHour, maxHour := 24, 0

	for _, day := range byDay {
		for _, occ := range day {
			startH := occ.Start.Hour()
			endH := occ.End.Hour()
			if occ.End.Minute() > 0 {
				endH++
			}
			if startH < minHour {
				minHour = startH
			}
			if endH > maxHour {
				maxHour = endH
			}
		}
	}

	if minHour == 24 {
		minHour, maxHour = defaultMinHour, defaultMaxHour
	}

	startHour := max(minHour-hourPaddingTop, 0)
	endHour := min(maxHour+hourPaddingBot, 24)
	if endHour <= startHour {
		endHour = startHour + 1
	}

	return hourRange{start: startHour, end: endHour, total: endHour - startHour}
}

func createCanvas() *gg.Context {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	return dc
}

// drawHeader рисует заголовок "Tháng 1 / 2024" или "Tháng 1 - Tháng 2 / 2024"
func drawHeader(dc *gg.Context, first, last time.Time) {
	title := fmt.Sprintf("Tháng %d / %d", first.Month(), first.Year())
	if first.Month() != last.Month() {
		title = fmt.Sprintf("Tháng %d - Tháng %d / %d", first.Month(), last.Month(), last.Year())
	}

	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	w, h := dc.MeasureString(title)
	dc.DrawStringAnchored(title, w/2+10, float64(headerHeight)/8+h/2, 0, 0)
}

func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	loadFont(dc, hourLabelFontSize, FontStyleMedium)
	dc.SetColor(hourLabelColor)

	for i := 0; i <= hours.total; i++ {
		y := float64(headerHeight) + float64(i)*cellHeight
		dc.DrawStringAnchored(fmt.Sprintf("%02d:00", hours.start+i), float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int, isToday bool) {
	switch {
	case isToday:
		dc.SetColor(todayBgColor)
	case dayIndex%2 == 0:
		dc.SetColor(evenDayColor)
	default:
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

func drawDayHeader(dc *gg.Context, date time.Time, x, y float64, dayWidth int) {
	loadFont(dc, dayFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(date.Format("02.01"), x+float64(dayWidth)/2, y, 0.5, -1)
	dc.DrawStringAnchored(weekdayShort(date.Weekday()), x+float64(dayWidth)/2, y, 0.5, -0.2)
}

func drawHourLines(dc *gg.Context, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)

	for i := 0; i <= hours.total; i++ {
		hy := y + float64(i)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

// drawOccurrence рисует одно занятие: время и название класса
func drawOccurrence(dc *gg.Context, occ model.CalendarOccurrence, now time.Time, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	startHour := float64(occ.Start.Hour()) + float64(occ.Start.Minute())/60.0
	endHour := float64(occ.End.Hour()) + float64(occ.End.Minute())/60.0

	slotY := y + (startHour-float64(hours.start))*cellHeight
	slotHeight := max((endHour-startHour)*cellHeight, minSlotHeight)

	fill := SubjectColor(occ.SubjectName)
	if !occ.End.After(now) {
		fill = pastSlotColor
	}
	slotWidth := float64(dayWidth) - float64(dayPaddingX*2)

	dc.SetColor(slotShadowColor)
	dc.DrawRoundedRectangle(x+dayPaddingX+shadowOffset, slotY+2+shadowOffset, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Fill()

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x+dayPaddingX, slotY+2, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+dayPaddingX, slotY+2, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Stroke()

	txtX := x + dayPaddingX + 8
	txtY := slotY + 18
	loadFont(dc, slotTimeFontSize, FontStyleMedium)
	dc.SetColor(slotTextColor)
	dc.DrawStringAnchored(occ.Start.Format("15:04")+"-"+occ.End.Format("15:04"), txtX, txtY, 0, 0)

	if slotHeight > 36 {
		loadFont(dc, slotTitleFontSize, FontStyleDefault)
		dc.DrawStringAnchored(truncate(occ.ClassName, 18), txtX, txtY+16, 0, 0)
	}
}

// SubjectColor возвращает стабильный цвет предмета
func SubjectColor(subject string) color.RGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(subject))
	return subjectPalette[h.Sum32()%uint32(len(subjectPalette))]
}

func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

func drawCurrentTimeLine(dc *gg.Context, now time.Time, hours hourRange, cellHeight float64, dayWidth int) {
	current := float64(now.Hour()) + float64(now.Minute())/60.0
	if current < float64(hours.start) || current > float64(hours.end) {
		return
	}

	y := float64(headerHeight) + (current-float64(hours.start))*cellHeight
	dc.SetColor(currentTimeColor)
	dc.SetLineWidth(2.0)
	dc.DrawLine(float64(leftLabelsWidth), y, float64(leftLabelsWidth+totalDaysInWeek*dayWidth), y)
	dc.Stroke()
}

// drawLegend рисует справа список предметов недели с их цветами
func drawLegend(dc *gg.Context, occurrences []model.CalendarOccurrence, dayWidth int) {
	seen := make(map[string]bool)
	var subjects []string
	for _, occ := range occurrences {
		if occ.SubjectName != "" && !seen[occ.SubjectName] {
			seen[occ.SubjectName] = true
			subjects = append(subjects, occ.SubjectName)
		}
	}
	sort.Strings(subjects)
	if len(subjects) > maxLegendItems {
		subjects = subjects[:maxLegendItems]
	}

	const boxW, boxH = 20.0, 14.0
	x := float64(leftLabelsWidth + totalDaysInWeek*dayWidth + 10)
	y := float64(headerHeight) + 10

	loadFont(dc, legendItemFontSize, FontStyleDefault)
	for _, subject := range subjects {
		dc.SetColor(SubjectColor(subject))
		dc.DrawRoundedRectangle(x, y, boxW, boxH, 3)
		dc.Fill()

		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(truncate(subject, 16), x+boxW+8, y+boxH/2+1, 0, 0.2)
		y += boxH + 14
	}
}

func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// truncate обрезает строку по рунам
func truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes-1]) + "…"
}

// weekdayShort короткие подписи дней: T2..T7, CN
func weekdayShort(wd time.Weekday) string {
	if wd == time.Sunday {
		return "CN"
	}
	return fmt.Sprintf("T%d", int(wd)+1)
}
