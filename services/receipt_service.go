package services

import (
	"errors"
	"strings"

	"haripg-http-service/config"
	"haripg-http-service/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InterfaceReceiptService 定义收据服务接口
type InterfaceReceiptService interface {
	GetAllReceipts(page, pageSize int, search string) ([]models.Receipt, int64, decimal.Decimal, error)
	GetReceiptByID(id uint) (*models.Receipt, error)
	CreateReceipt(receipt *models.Receipt) error
	UpdateReceipt(id uint, updates map[string]interface{}) (*models.Receipt, error)
	DeleteReceipt(id uint) error
	GetResidentPaymentHistory(residentName string) ([]models.Receipt, error)
}

// ReceiptService 提供收据相关的服务
type ReceiptService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewReceiptService 创建一个新的收据服务
func NewReceiptService(db *gorm.DB, cfg *config.Config) InterfaceReceiptService {
	return &ReceiptService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllReceipts 获取收据列表，支持分页和按姓名/房间号搜索，
// 同时返回过滤结果的总金额
func (s *ReceiptService) GetAllReceipts(page, pageSize int, search string) ([]models.Receipt, int64, decimal.Decimal, error) {
	query := s.DB.Model(&models.Receipt{})
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + search + "%"
		query = query.Where("resident_name LIKE ? OR room_number LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, decimal.Zero, err
	}

	// 过滤结果的总收款金额
	var sum decimal.NullDecimal
	if err := query.Session(&gorm.Session{}).Select("COALESCE(SUM(amount), 0)").Scan(&sum).Error; err != nil {
		return nil, 0, decimal.Zero, err
	}
	totalAmount := decimal.Zero
	if sum.Valid {
		totalAmount = sum.Decimal
	}

	var receipts []models.Receipt
	offset := (page - 1) * pageSize
	if err := query.Session(&gorm.Session{}).Order("date DESC, id DESC").
		Offset(offset).Limit(pageSize).Find(&receipts).Error; err != nil {
		return nil, 0, decimal.Zero, err
	}

	return receipts, total, totalAmount, nil
}

// 2 GetReceiptByID 根据ID获取收据
func (s *ReceiptService) GetReceiptByID(id uint) (*models.Receipt, error) {
	var receipt models.Receipt
	if err := s.DB.First(&receipt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("收据不存在")
		}
		return nil, err
	}
	return &receipt, nil
}

// 3 CreateReceipt 创建新收据
func (s *ReceiptService) CreateReceipt(receipt *models.Receipt) error {
	if strings.TrimSpace(receipt.ResidentName) == "" {
		return errors.New("住户姓名不能为空")
	}
	if receipt.PaymentMethod == "" {
		receipt.PaymentMethod = "UPI"
	}
	return s.DB.Create(receipt).Error
}

// 4 UpdateReceipt 更新收据信息
func (s *ReceiptService) UpdateReceipt(id uint, updates map[string]interface{}) (*models.Receipt, error) {
	receipt, err := s.GetReceiptByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(receipt).Updates(updates).Error; err != nil {
		return nil, err
	}

	// 重新获取更新后的收据信息
	return s.GetReceiptByID(id)
}

// 5 DeleteReceipt 删除收据
func (s *ReceiptService) DeleteReceipt(id uint) error {
	receipt, err := s.GetReceiptByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(receipt).Error
}

// 6 GetResidentPaymentHistory 返回指定住户的全部缴费历史，按日期降序。
// 匹配在内存中按规范化姓名进行，与欠租扫描使用同一套规则，
// 保证历史查询和对账结果永远一致。
func (s *ReceiptService) GetResidentPaymentHistory(residentName string) ([]models.Receipt, error) {
	var receipts []models.Receipt
	if err := s.DB.Find(&receipts).Error; err != nil {
		return nil, err
	}
	return MatchReceipts(residentName, receipts), nil
}
