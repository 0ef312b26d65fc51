package services

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strings"
	"time"

	"haripg-http-service/config"
	"haripg-http-service/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DayLayout 租金计算使用的日期格式，所有比较都以"天"为粒度
const DayLayout = "2006-01-02"

// DueEntry 表示一条欠租提醒，由扫描实时派生，不落库
type DueEntry struct {
	ResidentID  uint            `json:"resident_id"`
	FloorID     uint            `json:"floor_id"`
	RoomID      uint            `json:"room_id"`
	Name        string          `json:"name"`
	Room        string          `json:"room"`
	Amount      decimal.Decimal `json:"amount"`
	Mobile      string          `json:"mobile"`
	DueDate     string          `json:"due_date"`     // 应缴日期，ISO格式
	PeriodLabel string          `json:"period_label"` // 所属月份，如"January 2024"
}

// RentStats 表示整体缴费统计
type RentStats struct {
	TotalFloors      int `json:"total_floors"`
	TotalRooms       int `json:"total_rooms"`
	TotalResidents   int `json:"total_residents"`
	PaidCount        int `json:"paid_count"`
	UnpaidCount      int `json:"unpaid_count"`
	PaidPercentage   int `json:"paid_percentage"`
	UnpaidPercentage int `json:"unpaid_percentage"`
}

// ReminderInfo 表示一条催缴信息及拨号/WhatsApp链接。
// 链接只在这里拼装，实际的呼叫由前端发起。
type ReminderInfo struct {
	ResidentID   uint   `json:"resident_id"`
	Name         string `json:"name"`
	Room         string `json:"room"`
	DueDate      string `json:"due_date"`
	PeriodLabel  string `json:"period_label"`
	Message      string `json:"message"`
	CallLink     string `json:"call_link"`
	WhatsAppLink string `json:"whatsapp_link"`
}

// InterfaceRentService 定义租金对账服务接口
type InterfaceRentService interface {
	GetDueList() ([]DueEntry, *RentStats, error)
	GetRentStats() (*RentStats, error)
	DismissAlert(residentID uint, dueDate string) error
	MarkPaid(residentID uint) (*models.Receipt, error)
	GetReminder(residentID uint) (*ReminderInfo, error)
}

// RentService 提供租金对账相关的服务
type RentService struct {
	DB     *gorm.DB
	Config *config.Config
	// Now 允许测试注入固定时间；为空时使用 time.Now
	Now func() time.Time
}

// NewRentService 创建一个新的租金对账服务
func NewRentService(db *gorm.DB, cfg *config.Config) InterfaceRentService {
	return &RentService{
		DB:     db,
		Config: cfg,
		Now:    time.Now,
	}
}

// NormalizeResidentName 规范化住户姓名：去首尾空格并转小写。
// 收据和住户之间没有外键，只按规范化后的姓名匹配。
func NormalizeResidentName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ParseDay 将ISO日期字符串解析为当天零点（UTC）。
// 解析失败时返回false，调用方按"无信息"处理，绝不报错。
func ParseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		// 兼容带时间部分的RFC3339，如"2024-01-10T00:00:00Z"
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, false
		}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

// TruncateToDay 将时间截断到当天零点（UTC）
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddOneMonth 在给定日期上加一个自然月。
// 目标月天数不足时取该月最后一天，如1月31日 + 1月 = 2月29日（闰年）。
func AddOneMonth(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
	day := t.Day()
	if last := daysInMonth(firstOfNext.Year(), firstOfNext.Month()); day > last {
		day = last
	}
	return time.Date(firstOfNext.Year(), firstOfNext.Month(), day, 0, 0, 0, 0, t.Location())
}

// daysInMonth 返回指定月份的天数
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MatchReceipts 返回属于指定住户的全部收据，按缴费日期降序排列。
// 匹配规则：规范化后的姓名完全相等，不做模糊匹配；
// 日期无法解析的收据排在最后，永远不会被当作"最近一次缴费"。
func MatchReceipts(residentName string, receipts []models.Receipt) []models.Receipt {
	key := NormalizeResidentName(residentName)
	var matched []models.Receipt
	for _, r := range receipts {
		if NormalizeResidentName(r.ResidentName) == key {
			matched = append(matched, r)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		di, oki := ParseDay(matched[i].Date)
		dj, okj := ParseDay(matched[j].Date)
		if oki != okj {
			return oki
		}
		if !oki {
			return false
		}
		return di.After(dj)
	})
	return matched
}

// NextDueDate 计算住户的下一个应缴日期：
//  1. 有收据时取最近一次缴费日期加一个自然月，未来日期的收据同样生效；
//  2. 没有任何收据时取入住日期；
//  3. 入住日期缺失或无法解析时取今天，即立即到期。
func NextDueDate(resident models.Resident, matched []models.Receipt, today time.Time) time.Time {
	for _, r := range matched {
		if paid, ok := ParseDay(r.Date); ok {
			return AddOneMonth(paid)
		}
	}
	if joined, ok := ParseDay(resident.JoiningDate); ok {
		return joined
	}
	return TruncateToDay(today)
}

// IsDue 判断住户是否当前欠租，应缴日当天即视为欠租（含当日）
func IsDue(dueDate, today time.Time) bool {
	return !dueDate.After(TruncateToDay(today))
}

// PeriodLabel 返回应缴日期所属的月份标签，如"January 2024"
func PeriodLabel(dueDate time.Time) string {
	return fmt.Sprintf("%s %d", dueDate.Month().String(), dueDate.Year())
}

// ScanDueList 对整个公寓执行一次完整的欠租扫描。
// 纯函数：相同输入必然得到相同输出，可重复调用，无副作用。
// 结果按应缴日期升序排列（最久欠租在前），日期相同时保持
// 楼层、房间、住户的存储顺序。
func ScanDueList(floors []models.Floor, receipts []models.Receipt, dismissed map[uint]string, today time.Time) []DueEntry {
	today = TruncateToDay(today)
	var entries []DueEntry
	for _, floor := range floors {
		for _, room := range floor.Rooms {
			for _, resident := range room.Residents {
				matched := MatchReceipts(resident.Name, receipts)
				due := NextDueDate(resident, matched, today)
				if !IsDue(due, today) {
					continue
				}
				token := due.Format(DayLayout)
				if dismissed[resident.ID] == token {
					continue
				}
				entries = append(entries, DueEntry{
					ResidentID:  resident.ID,
					FloorID:     floor.ID,
					RoomID:      room.ID,
					Name:        resident.Name,
					Room:        room.RoomNumber,
					Amount:      resident.RentAmount,
					Mobile:      resident.Mobile,
					DueDate:     token,
					PeriodLabel: PeriodLabel(due),
				})
			}
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DueDate < entries[j].DueDate
	})
	return entries
}

// ComputeRentStats 根据扫描结果计算整体缴费统计。
// 已缴人数 = 总人数 - 欠租人数，最低为0。
func ComputeRentStats(floors []models.Floor, unpaidCount int) *RentStats {
	stats := &RentStats{
		TotalFloors: len(floors),
		UnpaidCount: unpaidCount,
	}
	for _, floor := range floors {
		stats.TotalRooms += len(floor.Rooms)
		for _, room := range floor.Rooms {
			stats.TotalResidents += len(room.Residents)
		}
	}
	stats.PaidCount = stats.TotalResidents - stats.UnpaidCount
	if stats.PaidCount < 0 {
		stats.PaidCount = 0
	}
	if stats.TotalResidents > 0 {
		stats.PaidPercentage = int(math.Round(float64(stats.PaidCount) / float64(stats.TotalResidents) * 100))
		stats.UnpaidPercentage = int(math.Round(float64(stats.UnpaidCount) / float64(stats.TotalResidents) * 100))
	}
	return stats
}

// CleanMobileNumber 去掉手机号中的所有非数字字符
func CleanMobileNumber(mobile string) string {
	var b strings.Builder
	for _, r := range mobile {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// loadSnapshot 从数据库加载一次扫描所需的全部数据
func (s *RentService) loadSnapshot() ([]models.Floor, []models.Receipt, map[uint]string, error) {
	var floors []models.Floor
	if err := s.DB.
		Preload("Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("rooms.id") }).
		Preload("Rooms.Residents", func(db *gorm.DB) *gorm.DB { return db.Order("residents.id") }).
		Order("id").Find(&floors).Error; err != nil {
		return nil, nil, nil, err
	}

	var receipts []models.Receipt
	if err := s.DB.Find(&receipts).Error; err != nil {
		return nil, nil, nil, err
	}

	var dismissals []models.RentAlertDismissal
	if err := s.DB.Find(&dismissals).Error; err != nil {
		return nil, nil, nil, err
	}
	dismissed := make(map[uint]string, len(dismissals))
	for _, d := range dismissals {
		dismissed[d.ResidentID] = d.DueDate
	}

	return floors, receipts, dismissed, nil
}

// 1 GetDueList 重新扫描全部住户，返回欠租列表和统计数据
func (s *RentService) GetDueList() ([]DueEntry, *RentStats, error) {
	floors, receipts, dismissed, err := s.loadSnapshot()
	if err != nil {
		return nil, nil, err
	}
	entries := ScanDueList(floors, receipts, dismissed, s.now())
	return entries, ComputeRentStats(floors, len(entries)), nil
}

// 2 GetRentStats 只返回统计数据
func (s *RentService) GetRentStats() (*RentStats, error) {
	_, stats, err := s.GetDueList()
	return stats, err
}

// 3 DismissAlert 确认一条欠租提醒，同一住户的旧确认会被覆盖。
// 确认只对完全相同的应缴日期生效，投影变化后提醒会重新出现。
func (s *RentService) DismissAlert(residentID uint, dueDate string) error {
	day, ok := ParseDay(dueDate)
	if !ok {
		return errors.New("无效的应缴日期")
	}

	var resident models.Resident
	if err := s.DB.First(&resident, residentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("住户不存在")
		}
		return err
	}

	dismissal := models.RentAlertDismissal{
		ResidentID: residentID,
		DueDate:    day.Format(DayLayout),
	}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "resident_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"due_date", "updated_at"}),
	}).Create(&dismissal).Error
}

// 4 MarkPaid 将住户标记为已缴：按其配置的租金生成一张今天日期的收据。
// 这是一个普通的CRUD动作，扫描逻辑本身不持有任何状态。
func (s *RentService) MarkPaid(residentID uint) (*models.Receipt, error) {
	var resident models.Resident
	if err := s.DB.Preload("Room").First(&resident, residentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("住户不存在")
		}
		return nil, err
	}

	roomNumber := ""
	if resident.Room != nil {
		roomNumber = resident.Room.RoomNumber
	}

	receipt := &models.Receipt{
		ResidentName:  resident.Name,
		RoomNumber:    roomNumber,
		MobileNumber:  resident.Mobile,
		Amount:        resident.RentAmount,
		Date:          TruncateToDay(s.now()).Format(DayLayout),
		PaymentMethod: "Cash",
		Notes:         "Marked as paid from rent alerts",
	}
	if err := s.DB.Create(receipt).Error; err != nil {
		return nil, err
	}
	return receipt, nil
}

// 5 GetReminder 为欠租住户生成催缴信息和呼叫链接
func (s *RentService) GetReminder(residentID uint) (*ReminderInfo, error) {
	entries, _, err := s.GetDueList()
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.ResidentID != residentID {
			continue
		}

		settings, err := s.loadPGName()
		if err != nil {
			return nil, err
		}

		due, _ := ParseDay(entry.DueDate)
		message := fmt.Sprintf(
			"Hello %s, your rent for %s (due since %s) is pending. Please process the payment at your earliest. Thank you! - %s",
			entry.Name, entry.PeriodLabel, due.Format("02/01/2006"), settings)

		info := &ReminderInfo{
			ResidentID:  entry.ResidentID,
			Name:        entry.Name,
			Room:        entry.Room,
			DueDate:     entry.DueDate,
			PeriodLabel: entry.PeriodLabel,
			Message:     message,
		}
		if mobile := CleanMobileNumber(entry.Mobile); mobile != "" {
			info.CallLink = "tel:" + mobile
			info.WhatsAppLink = fmt.Sprintf("https://wa.me/%s%s?text=%s",
				s.Config.WhatsAppCountryCode, mobile, url.QueryEscape(message))
		}
		return info, nil
	}

	return nil, errors.New("该住户当前没有欠租提醒")
}

// loadPGName 读取公寓名称用于催缴落款
func (s *RentService) loadPGName() (string, error) {
	var settings models.AppSettings
	if err := s.DB.First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "Management", nil
		}
		return "", err
	}
	if settings.PGName == "" {
		return "Management", nil
	}
	return settings.PGName, nil
}

// now 返回当前时间，测试时可替换
func (s *RentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
