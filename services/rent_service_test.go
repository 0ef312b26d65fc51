package services

import (
	"testing"
	"time"

	"haripg-http-service/models"

	"github.com/shopspring/decimal"
)

// day 构造测试用的UTC日期
func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// makeFloor 构造一个只有单个房间的测试楼层
func makeFloor(floorID, roomID uint, roomNumber string, residents ...models.Resident) models.Floor {
	return models.Floor{
		BaseModel:   models.BaseModel{ID: floorID},
		FloorNumber: "Floor 1",
		Rooms: []models.Room{
			{
				BaseModel:  models.BaseModel{ID: roomID},
				RoomNumber: roomNumber,
				FloorID:    floorID,
				Residents:  residents,
			},
		},
	}
}

func makeResident(id uint, name, joiningDate string) models.Resident {
	return models.Resident{
		BaseModel:   models.BaseModel{ID: id},
		Name:        name,
		Mobile:      "9876543210",
		RentAmount:  decimal.NewFromInt(8500),
		JoiningDate: joiningDate,
	}
}

func makeReceipt(name, date string) models.Receipt {
	return models.Receipt{
		ResidentName: name,
		Amount:       decimal.NewFromInt(8500),
		Date:         date,
	}
}

func TestNormalizeResidentName(t *testing.T) {
	cases := map[string]string{
		" Alice ":      "alice",
		"ALICE":        "alice",
		"alice":        "alice",
		"  Bob Kumar ": "bob kumar",
		"":             "",
		"   ":          "",
	}
	for input, want := range cases {
		if got := NormalizeResidentName(input); got != want {
			t.Errorf("NormalizeResidentName(%q) = %q, 期望 %q", input, got, want)
		}
	}
}

func TestParseDay(t *testing.T) {
	// 标准ISO日期
	got, ok := ParseDay("2024-01-31")
	if !ok || !got.Equal(day(2024, time.January, 31)) {
		t.Errorf("解析2024-01-31失败: %v, %v", got, ok)
	}

	// 带时间部分的RFC3339也应该能解析
	got, ok = ParseDay("2024-01-10T15:04:05Z")
	if !ok || !got.Equal(day(2024, time.January, 10)) {
		t.Errorf("解析RFC3339失败: %v, %v", got, ok)
	}

	// 前后空格应当被忽略
	if _, ok := ParseDay(" 2024-01-10 "); !ok {
		t.Error("带空格的日期应该能解析")
	}

	// 无法解析的输入返回false而不是报错
	for _, bad := range []string{"", "not-a-date", "31/01/2024", "2024-13-01"} {
		if _, ok := ParseDay(bad); ok {
			t.Errorf("ParseDay(%q) 不应该解析成功", bad)
		}
	}
}

func TestAddOneMonth(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		// 普通情况
		{day(2024, time.March, 15), day(2024, time.April, 15)},
		// 跨年
		{day(2023, time.December, 10), day(2024, time.January, 10)},
		// 1月31日 + 1月 = 2月29日（闰年截断到月末）
		{day(2024, time.January, 31), day(2024, time.February, 29)},
		// 非闰年截断到2月28日
		{day(2023, time.January, 31), day(2023, time.February, 28)},
		// 3月31日 → 4月30日
		{day(2024, time.March, 31), day(2024, time.April, 30)},
		// 月末截断不粘连：2月29日 + 1月 = 3月29日，不是3月31日
		{day(2024, time.February, 29), day(2024, time.March, 29)},
	}
	for _, c := range cases {
		if got := AddOneMonth(c.in); !got.Equal(c.want) {
			t.Errorf("AddOneMonth(%s) = %s, 期望 %s",
				c.in.Format(DayLayout), got.Format(DayLayout), c.want.Format(DayLayout))
		}
	}
}

func TestMatchReceipts(t *testing.T) {
	receipts := []models.Receipt{
		makeReceipt("Alice", "2024-01-10"),
		makeReceipt(" alice ", "2024-03-10"),
		makeReceipt("Bob", "2024-02-10"),
		makeReceipt("ALICE", "bad-date"),
		makeReceipt("Alice", "2024-02-10"),
	}

	matched := MatchReceipts("Alice", receipts)
	if len(matched) != 4 {
		t.Fatalf("期望匹配4条收据，实际 %d", len(matched))
	}

	// 按日期降序，无法解析的排最后
	wantDates := []string{"2024-03-10", "2024-02-10", "2024-01-10", "bad-date"}
	for i, want := range wantDates {
		if matched[i].Date != want {
			t.Errorf("第%d条收据日期 = %q, 期望 %q", i, matched[i].Date, want)
		}
	}

	// 没有匹配时返回空
	if got := MatchReceipts("Charlie", receipts); len(got) != 0 {
		t.Errorf("不存在的住户不应匹配到收据: %v", got)
	}
}

func TestNextDueDate(t *testing.T) {
	today := day(2024, time.March, 15)
	resident := makeResident(1, "Alice", "2024-01-10")

	// 有收据：最近一次缴费日期 + 1个月
	matched := MatchReceipts("Alice", []models.Receipt{
		makeReceipt("Alice", "2024-01-10"),
		makeReceipt("Alice", "2024-02-10"),
	})
	if got := NextDueDate(resident, matched, today); !got.Equal(day(2024, time.March, 10)) {
		t.Errorf("有收据时应缴日期 = %s, 期望 2024-03-10", got.Format(DayLayout))
	}

	// 未来日期的收据同样生效
	matched = MatchReceipts("Alice", []models.Receipt{
		makeReceipt("Alice", "2024-04-01"),
	})
	if got := NextDueDate(resident, matched, today); !got.Equal(day(2024, time.May, 1)) {
		t.Errorf("未来收据应缴日期 = %s, 期望 2024-05-01", got.Format(DayLayout))
	}

	// 收据日期全部无法解析时退回入住日期
	matched = MatchReceipts("Alice", []models.Receipt{
		makeReceipt("Alice", "garbage"),
	})
	if got := NextDueDate(resident, matched, today); !got.Equal(day(2024, time.January, 10)) {
		t.Errorf("收据日期损坏时应退回入住日期, 实际 %s", got.Format(DayLayout))
	}

	// 没有收据：取入住日期
	if got := NextDueDate(resident, nil, today); !got.Equal(day(2024, time.January, 10)) {
		t.Errorf("无收据时应缴日期 = %s, 期望 2024-01-10", got.Format(DayLayout))
	}

	// 入住日期缺失：取今天
	noJoin := makeResident(2, "Bob", "")
	if got := NextDueDate(noJoin, nil, today); !got.Equal(today) {
		t.Errorf("入住日期缺失时应取今天, 实际 %s", got.Format(DayLayout))
	}

	// 入住日期损坏：同样取今天
	badJoin := makeResident(3, "Carol", "10/01/2024")
	if got := NextDueDate(badJoin, nil, today); !got.Equal(today) {
		t.Errorf("入住日期损坏时应取今天, 实际 %s", got.Format(DayLayout))
	}
}

func TestNextDueDateMonotonic(t *testing.T) {
	// 更晚的缴费只会把应缴日期往后推
	today := day(2024, time.June, 1)
	resident := makeResident(1, "Alice", "2024-01-10")

	earlier := NextDueDate(resident, []models.Receipt{makeReceipt("Alice", "2024-01-31")}, today)
	later := NextDueDate(resident, []models.Receipt{makeReceipt("Alice", "2024-02-15")}, today)
	if earlier.After(later) {
		t.Errorf("缴费日期后移不应使应缴日期前移: %s > %s",
			earlier.Format(DayLayout), later.Format(DayLayout))
	}
}

func TestIsDue(t *testing.T) {
	today := day(2024, time.March, 15)

	// 应缴日当天即视为欠租
	if !IsDue(day(2024, time.March, 15), today) {
		t.Error("应缴日当天应视为欠租")
	}
	if !IsDue(day(2024, time.March, 14), today) {
		t.Error("应缴日已过应视为欠租")
	}
	if IsDue(day(2024, time.March, 16), today) {
		t.Error("应缴日在明天不应视为欠租")
	}
}

func TestPeriodLabel(t *testing.T) {
	if got := PeriodLabel(day(2024, time.January, 31)); got != "January 2024" {
		t.Errorf("PeriodLabel = %q, 期望 %q", got, "January 2024")
	}
	if got := PeriodLabel(day(2023, time.December, 1)); got != "December 2023" {
		t.Errorf("PeriodLabel = %q, 期望 %q", got, "December 2023")
	}
}

func TestScanDueList(t *testing.T) {
	today := day(2024, time.March, 15)

	floors := []models.Floor{
		makeFloor(1, 1, "101",
			makeResident(1, "Alice", "2024-01-10"),
			makeResident(2, "Bob", "2024-02-01"),
		),
		makeFloor(2, 2, "201",
			makeResident(3, "Carol", "2024-03-20"),
		),
	}

	receipts := []models.Receipt{
		// Alice上次缴费2月10日，应缴3月10日，已欠租
		makeReceipt("Alice", "2024-02-10"),
		// Bob上次缴费3月1日，应缴4月1日，不欠租
		makeReceipt("Bob", "2024-03-01"),
	}

	entries := ScanDueList(floors, receipts, nil, today)

	// Carol入住日期在未来，不欠租；只有Alice
	if len(entries) != 1 {
		t.Fatalf("期望1条欠租记录，实际 %d: %+v", len(entries), entries)
	}
	e := entries[0]
	if e.ResidentID != 1 || e.DueDate != "2024-03-10" || e.PeriodLabel != "March 2024" {
		t.Errorf("欠租记录不符: %+v", e)
	}
	if e.Room != "101" || e.FloorID != 1 || e.RoomID != 1 {
		t.Errorf("房间信息不符: %+v", e)
	}
}

func TestScanDueListSorting(t *testing.T) {
	today := day(2024, time.March, 15)

	// 三个住户都没有收据，应缴日期即入住日期
	floors := []models.Floor{
		makeFloor(1, 1, "101",
			makeResident(1, "Alice", "2024-02-01"),
			makeResident(2, "Bob", "2024-01-05"),
			makeResident(3, "Carol", "2024-02-01"),
		),
	}

	entries := ScanDueList(floors, nil, nil, today)
	if len(entries) != 3 {
		t.Fatalf("期望3条欠租记录，实际 %d", len(entries))
	}

	// 按应缴日期升序，相同日期保持存储顺序
	wantOrder := []uint{2, 1, 3}
	for i, want := range wantOrder {
		if entries[i].ResidentID != want {
			t.Errorf("第%d条记录的住户ID = %d, 期望 %d", i, entries[i].ResidentID, want)
		}
	}
}

func TestScanDueListDismissal(t *testing.T) {
	today := day(2024, time.March, 15)
	floors := []models.Floor{
		makeFloor(1, 1, "101", makeResident(1, "Alice", "2024-01-10")),
	}
	receipts := []models.Receipt{makeReceipt("Alice", "2024-02-10")}

	// 确认当前周期后提醒消失
	dismissed := map[uint]string{1: "2024-03-10"}
	if entries := ScanDueList(floors, receipts, dismissed, today); len(entries) != 0 {
		t.Errorf("确认后不应再有提醒: %+v", entries)
	}

	// 确认的是旧周期，对当前周期无效
	dismissed = map[uint]string{1: "2024-02-10"}
	entries := ScanDueList(floors, receipts, dismissed, today)
	if len(entries) != 1 {
		t.Fatalf("旧周期的确认不应屏蔽当前提醒，实际 %d 条", len(entries))
	}

	// 新的缴费使投影前移，旧确认自动失效，提醒按新日期重新出现
	receipts = append(receipts, makeReceipt("Alice", "2024-02-12"))
	dismissed = map[uint]string{1: "2024-03-10"}
	entries = ScanDueList(floors, receipts, dismissed, today)
	if len(entries) != 1 || entries[0].DueDate != "2024-03-12" {
		t.Errorf("投影前移后提醒应以新日期出现: %+v", entries)
	}
}

func TestScanDueListNameMatching(t *testing.T) {
	today := day(2024, time.June, 15)
	floors := []models.Floor{
		makeFloor(1, 1, "101", makeResident(1, " Alice ", "2024-01-10")),
	}

	// 大小写和空格差异不影响收据匹配
	receipts := []models.Receipt{makeReceipt("ALICE", "2024-06-10")}
	entries := ScanDueList(floors, receipts, nil, today)
	if len(entries) != 0 {
		t.Errorf("规范化后同名的收据应被匹配: %+v", entries)
	}

	// 不同姓名的收据不参与计算
	receipts = []models.Receipt{makeReceipt("Alicia", "2024-06-10")}
	entries = ScanDueList(floors, receipts, nil, today)
	if len(entries) != 1 {
		t.Errorf("不同姓名的收据不应影响投影, 实际 %d 条", len(entries))
	}
}

func TestScanDueListSharedName(t *testing.T) {
	// 两个住户规范化后同名时，该姓名的收据会同时作用于两人。
	// 这是按姓名匹配的已知限制，行为本身是确定的。
	today := day(2024, time.March, 15)
	floors := []models.Floor{
		makeFloor(1, 1, "101", makeResident(1, "Alice", "2024-01-10")),
		makeFloor(2, 2, "201", makeResident(2, " alice ", "2024-01-20")),
	}

	// 没有收据时两人分别按各自的入住日期欠租
	entries := ScanDueList(floors, nil, nil, today)
	if len(entries) != 2 {
		t.Fatalf("期望2条欠租记录，实际 %d", len(entries))
	}
	if entries[0].DueDate != "2024-01-10" || entries[1].DueDate != "2024-01-20" {
		t.Errorf("无收据时应按入住日期投影: %+v", entries)
	}

	// 一张收据同时推动两人的投影
	receipts := []models.Receipt{makeReceipt("ALICE", "2024-02-01")}
	entries = ScanDueList(floors, receipts, nil, today)
	if len(entries) != 2 {
		t.Fatalf("收据后期望2条欠租记录，实际 %d", len(entries))
	}
	for _, e := range entries {
		if e.DueDate != "2024-03-01" {
			t.Errorf("住户%d的应缴日期 = %s, 期望 2024-03-01", e.ResidentID, e.DueDate)
		}
	}

	// 收据把投影推到未来时两人同时消失
	receipts = []models.Receipt{makeReceipt("ALICE", "2024-03-01")}
	if entries := ScanDueList(floors, receipts, nil, today); len(entries) != 0 {
		t.Errorf("投影在未来时不应有欠租记录: %+v", entries)
	}
}

func TestComputeRentStats(t *testing.T) {
	floors := []models.Floor{
		makeFloor(1, 1, "101",
			makeResident(1, "Alice", ""),
			makeResident(2, "Bob", ""),
		),
		makeFloor(2, 2, "201",
			makeResident(3, "Carol", ""),
		),
	}

	stats := ComputeRentStats(floors, 1)
	if stats.TotalFloors != 2 || stats.TotalRooms != 2 || stats.TotalResidents != 3 {
		t.Errorf("基础统计不符: %+v", stats)
	}
	if stats.PaidCount != 2 || stats.UnpaidCount != 1 {
		t.Errorf("缴费统计不符: %+v", stats)
	}
	if stats.PaidPercentage != 67 || stats.UnpaidPercentage != 33 {
		t.Errorf("百分比不符: %+v", stats)
	}

	// 没有住户时百分比为0，不产生除零
	empty := ComputeRentStats(nil, 0)
	if empty.PaidPercentage != 0 || empty.UnpaidPercentage != 0 {
		t.Errorf("空数据统计不符: %+v", empty)
	}

	// 欠租人数超过总人数时已缴人数取0
	over := ComputeRentStats(floors, 5)
	if over.PaidCount != 0 {
		t.Errorf("已缴人数不应为负: %+v", over)
	}
}

func TestCleanMobileNumber(t *testing.T) {
	cases := map[string]string{
		"9876543210":     "9876543210",
		"+91 98765 432":  "9198765432",
		"98-76(54)32 10": "9876543210",
		"":               "",
		"abc":            "",
	}
	for input, want := range cases {
		if got := CleanMobileNumber(input); got != want {
			t.Errorf("CleanMobileNumber(%q) = %q, 期望 %q", input, got, want)
		}
	}
}
