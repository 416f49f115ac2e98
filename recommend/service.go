package recommend

import (
	"log"
	"math"
	"sort"
	"strings"

	"github.com/vnkhanh/healthquiz-server/models"
	"gorm.io/gorm"
)

// Source cho biết kết quả đi qua nhánh nào — để hiển thị vẫn như nhau
// nhưng test và log phân biệt được rule khớp hay rơi xuống fallback.
type Source string

const (
	SourceMatched           Source = "matched"
	SourceFallbackCatalog   Source = "fallback_catalog"
	SourceFallbackHardcoded Source = "fallback_hardcoded"
)

// Giá dùng khi sản phẩm không có cả SRP lẫn MRP
const defaultPrice = 499.0

type ProductView struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Price       float64 `json:"price"`
	MRP         float64 `json:"mrp"`
}

type TagView struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

type Result struct {
	Source             Source        `json:"source"`
	Products           []ProductView `json:"products"`
	TotalPrice         float64       `json:"total_price"`
	Savings            float64       `json:"savings"`
	DiscountPercentage float64       `json:"discount_percentage"`
	CouponCode         *string       `json:"coupon_code"`
	Tags               []TagView     `json:"tags"`
}

// Service tính gợi ý sản phẩm từ câu trả lời của một session.
// DB được truyền tường minh khi khởi tạo (không dùng global) để test
// chạy được trên sqlite in-memory.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Recommend không bao giờ trả lỗi: mọi sự cố (DB, rule không khớp, tên sản
// phẩm không resolve được) đều quy về fallback — user luôn thấy một danh
// sách sản phẩm. Kết quả là hàm thuần của (answers, rule table, catalog)
// tại thời điểm đọc, không persist.
func (s *Service) Recommend(answers []models.QuizAnswer) *Result {
	tags := s.resolveTags(answers)
	result := &Result{Tags: tagViews(tags)}

	if rule := s.matchRule(tags); rule != nil {
		products := s.resolveProducts(SplitProductNames(rule.RecommendedProducts))
		if len(products) > 0 {
			result.Source = SourceMatched
			result.CouponCode = rule.CouponCode
			result.DiscountPercentage = rule.DiscountPercentage
			fillPricing(result, products, rule.DiscountPercentage)
			return result
		}
		// Rule khớp nhưng không tên nào còn trong catalog -> fallback sản phẩm,
		// không phải fallback rule
		log.Printf("recommend: rule %d không resolve được sản phẩm nào", rule.ID)
	}

	s.fallback(result)
	return result
}

// resolveTags: đường chính là khớp text câu trả lời với lựa chọn; nếu không
// ra tag nào thì thử đường dự phòng qua option_id đã ghi lúc lưu câu trả lời
// (text có thể hết khớp khi admin sửa nội dung lựa chọn sau này).
func (s *Service) resolveTags(answers []models.QuizAnswer) []models.Tag {
	var questions []models.Question
	if err := s.db.Where("active = ?", true).
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("thu_tu ASC, id ASC") }).
		Preload("Options.Tags").
		Order("thu_tu ASC, id ASC").
		Find(&questions).Error; err != nil {
		log.Printf("recommend: không đọc được câu hỏi: %v", err)
		return nil
	}

	tags, _ := ExtractTags(questions, answers)
	if len(tags) > 0 {
		return tags
	}

	ids := storedOptionIDs(answers)
	if len(ids) == 0 {
		return tags
	}

	var viaOptions []models.Tag
	if err := s.db.
		Joins("JOIN option_tags ON option_tags.tag_id = tags.id").
		Where("option_tags.option_id IN ?", ids).
		Distinct().
		Find(&viaOptions).Error; err != nil {
		log.Printf("recommend: tra tag theo option_id thất bại: %v", err)
		return tags
	}
	sort.Slice(viaOptions, func(i, j int) bool { return viaOptions[i].Name < viaOptions[j].Name })
	return viaOptions
}

func (s *Service) matchRule(tags []models.Tag) *models.Rule {
	if len(tags) == 0 {
		return nil
	}
	var rules []models.Rule
	if err := s.db.Order("id ASC").Find(&rules).Error; err != nil {
		log.Printf("recommend: không đọc được rule: %v", err)
		return nil
	}
	return MatchRule(TagNames(tags), rules)
}

// resolveProducts khớp tên sản phẩm của rule với catalog đang active,
// không phân biệt hoa thường và khoảng trắng. Tên không khớp bị bỏ qua.
func (s *Service) resolveProducts(names []string) []models.Product {
	if len(names) == 0 {
		return nil
	}
	var actives []models.Product
	if err := s.db.Where("active = ?", true).Order("id ASC").Find(&actives).Error; err != nil {
		log.Printf("recommend: không đọc được catalog: %v", err)
		return nil
	}
	byName := make(map[string]*models.Product, len(actives))
	for i := range actives {
		byName[strings.ToLower(strings.TrimSpace(actives[i].Name))] = &actives[i]
	}

	out := []models.Product{}
	for _, n := range names {
		if p, ok := byName[strings.ToLower(strings.TrimSpace(n))]; ok {
			out = append(out, *p)
		} else {
			log.Printf("recommend: sản phẩm %q không có trong catalog, bỏ qua", n)
		}
	}
	return out
}

// fallback: 3 sản phẩm active đầu tiên theo id; catalog hỏng hoặc thiếu
// thì về bộ ba cố định — tầng cuối, không thể fail.
func (s *Service) fallback(result *Result) {
	var products []models.Product
	err := s.db.Where("active = ?", true).Order("id ASC").Limit(3).Find(&products).Error
	if err != nil || len(products) < 3 {
		if err != nil {
			log.Printf("recommend: fallback catalog thất bại: %v", err)
		}
		result.Source = SourceFallbackHardcoded
		result.Products = hardcodedProducts()
		result.TotalPrice = 0
		for _, p := range result.Products {
			result.TotalPrice += p.Price
		}
		return
	}
	result.Source = SourceFallbackCatalog
	fillPricing(result, products, 0)
}

// fillPricing: giá hiển thị = SRP nếu có, rồi MRP, rồi giá mặc định.
// Có giảm giá thì tổng = round(tổng MRP × (1 − d/100)) thay vì cộng giá bán;
// savings = tổng MRP − tổng sau giảm.
func fillPricing(result *Result, products []models.Product, discount float64) {
	views := make([]ProductView, 0, len(products))
	var displayedTotal, listTotal float64
	for _, p := range products {
		price := displayedPrice(p)
		mrp := p.MRP
		if mrp <= 0 {
			mrp = defaultPrice
		}
		views = append(views, ProductView{
			Name:        p.Name,
			Description: p.Description,
			ImageURL:    p.ImageURL,
			Price:       price,
			MRP:         mrp,
		})
		displayedTotal += price
		listTotal += mrp
	}
	result.Products = views
	if discount > 0 {
		result.TotalPrice = math.Round(listTotal * (1 - discount/100))
		result.Savings = listTotal - result.TotalPrice
	} else {
		result.TotalPrice = displayedTotal
	}
}

func displayedPrice(p models.Product) float64 {
	if p.SRP != nil && *p.SRP > 0 {
		return *p.SRP
	}
	if p.MRP > 0 {
		return p.MRP
	}
	return defaultPrice
}

func storedOptionIDs(answers []models.QuizAnswer) []uint {
	ids := []uint{}
	for _, a := range answers {
		if a.OptionID != nil {
			ids = append(ids, *a.OptionID)
		}
	}
	return ids
}

func tagViews(tags []models.Tag) []TagView {
	views := make([]TagView, 0, len(tags))
	for _, t := range tags {
		views = append(views, TagView{Name: t.Name, Title: t.Title, Icon: t.Icon})
	}
	return views
}

// Bộ ba sản phẩm cuối cùng, trả về khi catalog không dùng được
func hardcodedProducts() []ProductView {
	return []ProductView{
		{Name: "Daily Energy Boost", Description: "Vitamin tổng hợp hỗ trợ năng lượng hằng ngày", Price: 749, MRP: 999},
		{Name: "Stress Relief Complex", Description: "Hỗ trợ giảm căng thẳng, ngủ ngon", Price: 649, MRP: 899},
		{Name: "Recovery & Immunity", Description: "Phục hồi cơ thể và tăng đề kháng", Price: 849, MRP: 1099},
	}
}
