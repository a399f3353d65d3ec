// Package seed loads a demo data set into an existing studio through the
// same use cases the API uses, so every business rule applies.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-manager/internal/domain/contract"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/studio-manager/internal/infra/repository"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/timezone"
	ucAccounting "github.com/BruksfildServices01/studio-manager/internal/usecase/accounting"
	ucAppointment "github.com/BruksfildServices01/studio-manager/internal/usecase/appointment"
	ucCatalog "github.com/BruksfildServices01/studio-manager/internal/usecase/catalog"
	ucContract "github.com/BruksfildServices01/studio-manager/internal/usecase/contract"
	ucCustomer "github.com/BruksfildServices01/studio-manager/internal/usecase/customer"
	ucPayroll "github.com/BruksfildServices01/studio-manager/internal/usecase/payroll"
	ucRetouch "github.com/BruksfildServices01/studio-manager/internal/usecase/retouch"
)

var ErrAlreadySeeded = errors.New("studio already has catalog data")

type Report struct {
	Staff        int
	CatalogItems int
	Customers    int
	Contracts    int
	Appointments int
	Transactions int
	Retouch      int
}

type staffSeed struct {
	name, position, phone string
	base, hourly          int64
}

type itemSeed struct {
	kind, name, category string
	price                int64
	features             []string
}

type customerSeed struct {
	name, phone, source, status string
	weddingInDays               int
}

var (
	demoStaff = []staffSeed{
		{"Trần Quang", "Nhiếp ảnh chính", "0901000001", 12_000_000, 70_000},
		{"Lê Thảo", "Trang điểm", "0901000002", 9_000_000, 50_000},
		{"Phạm Duy", "Hậu kỳ", "0901000003", 10_000_000, 60_000},
	}

	demoItems = []itemSeed{
		{"package", "Gói Cơ Bản", "wedding", 12_000_000, []string{"1 album 25x35", "150 ảnh chỉnh sửa", "Chụp tại studio"}},
		{"package", "Gói Premium", "wedding", 25_000_000, []string{"2 album", "300 ảnh chỉnh sửa", "Ngoại cảnh Đà Lạt"}},
		{"service", "Album phụ", "album", 1_500_000, nil},
		{"service", "Quay phóng sự cưới", "video", 8_000_000, nil},
		{"service", "Trang điểm cô dâu", "makeup", 2_000_000, nil},
	}

	demoCustomers = []customerSeed{
		{"Nguyễn Minh Anh", "0912000001", "facebook", "hot", 45},
		{"Đỗ Hải Yến", "0912000002", "referral", "potential", 90},
		{"Vũ Quốc Bảo", "0912000003", "website", "interested", 150},
		{"Hoàng Thu Trang", "0912000004", "walk_in", "hot", 20},
	}
)

// Run seeds the studio identified by slug. It refuses studios that already
// have catalog items.
func Run(ctx context.Context, db *gorm.DB, slug string, log *slog.Logger) (*Report, error) {
	var studio models.Studio
	if err := db.WithContext(ctx).Where("slug = ?", slug).First(&studio).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("studio_not_found")
		}
		return nil, err
	}

	var existing int64
	if err := db.WithContext(ctx).Model(&models.CatalogItem{}).Where("studio_id = ?", studio.ID).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrAlreadySeeded
	}

	var owner models.User
	if err := db.WithContext(ctx).Where("studio_id = ?", studio.ID).Order("id ASC").First(&owner).Error; err != nil {
		return nil, fmt.Errorf("seed: studio has no user: %w", err)
	}

	s := &seeder{
		db:     db,
		studio: &studio,
		owner:  &owner,
		now:    timezone.NowIn(studio.Timezone),
		log:    log,
	}
	if err := s.run(ctx); err != nil {
		return nil, err
	}
	return &s.report, nil
}

type seeder struct {
	db     *gorm.DB
	studio *models.Studio
	owner  *models.User
	now    time.Time
	log    *slog.Logger
	report Report

	staff     []*models.StaffMember
	packages  []*models.CatalogItem
	services  []*models.CatalogItem
	customers []*models.Customer
	contracts []*models.Contract
}

func (s *seeder) run(ctx context.Context) error {
	for _, step := range []struct {
		name string
		fn   func(context.Context) error
	}{
		{"staff", s.seedStaff},
		{"catalog", s.seedCatalog},
		{"customers", s.seedCustomers},
		{"contracts", s.seedContracts},
		{"appointments", s.seedAppointments},
		{"transactions", s.seedTransactions},
		{"retouch", s.seedRetouch},
	} {
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("seed %s: %w", step.name, err)
		}
		s.log.Info("seeded", slog.String("step", step.name))
	}
	return nil
}

func (s *seeder) seedStaff(ctx context.Context) error {
	uc := ucPayroll.NewManageStaff(infraRepo.NewPayrollGormRepository(s.db), nil)
	for _, st := range demoStaff {
		m, err := uc.Create(ctx, s.studio.ID, s.owner.ID, ucPayroll.StaffInput{
			Name:                st.name,
			Position:            st.position,
			Phone:               st.phone,
			BaseSalary:          st.base,
			HourlyRate:          st.hourly,
			WorkingDaysPerMonth: 26,
		})
		if err != nil {
			return err
		}
		s.staff = append(s.staff, m)
	}
	s.report.Staff = len(s.staff)
	return nil
}

func (s *seeder) seedCatalog(ctx context.Context) error {
	uc := ucCatalog.NewCatalog(infraRepo.NewCatalogGormRepository(s.db), cache.NewMemory(time.Minute), time.Minute, nil, nil, s.log)
	for _, it := range demoItems {
		item, err := uc.Create(ctx, s.studio.ID, s.owner.ID, ucCatalog.ItemInput{
			Kind:     it.kind,
			Name:     it.name,
			Price:    it.price,
			Features: it.features,
			Category: it.category,
		})
		if err != nil {
			return err
		}
		if it.kind == "package" {
			s.packages = append(s.packages, item)
		} else {
			s.services = append(s.services, item)
		}
	}
	s.report.CatalogItems = len(s.packages) + len(s.services)
	return nil
}

func (s *seeder) seedCustomers(ctx context.Context) error {
	uc := ucCustomer.NewSaveCustomer(infraRepo.NewCustomerGormRepository(s.db), nil)
	notes := ucCustomer.NewAddCustomerNote(infraRepo.NewCustomerGormRepository(s.db))

	for _, cs := range demoCustomers {
		wedding := calendarDay(s.now.AddDate(0, 0, cs.weddingInDays))
		c, err := uc.Create(ctx, s.studio.ID, s.owner.ID, ucCustomer.CustomerInput{
			Name:        cs.name,
			Phone:       cs.phone,
			Source:      cs.source,
			Status:      cs.status,
			WeddingDate: &wedding,
		})
		if err != nil {
			return err
		}
		if _, err := notes.Execute(ctx, s.studio.ID, c.ID, s.owner.Name, "Khách hỏi giá gói chụp ngoại cảnh."); err != nil {
			return err
		}
		s.customers = append(s.customers, c)
	}
	s.report.Customers = len(s.customers)
	return nil
}

// seedContracts signs the first three customers and walks them to
// different points of the workflow.
func (s *seeder) seedContracts(ctx context.Context) error {
	repo := infraRepo.NewContractGormRepository(s.db)
	create := ucContract.NewCreateContract(repo, nil)
	transition := ucContract.NewChangeContractStatus(repo, nil, nil)
	pay := ucContract.NewRecordContractPayment(repo, nil, nil)

	plans := []struct {
		pkg      int
		services []ucContract.ServiceLine
		discount int64
		deposit  int64
		to       []contract.Status
	}{
		{1, []ucContract.ServiceLine{{ServiceID: s.services[0].ID, Quantity: 1}}, 1_000_000, 10_000_000, []contract.Status{contract.StatusScheduled}},
		{0, nil, 0, 5_000_000, nil},
		{1, []ucContract.ServiceLine{{ServiceID: s.services[1].ID, Quantity: 1}}, 2_000_000, 15_000_000, []contract.Status{contract.StatusScheduled, contract.StatusRetouch}},
	}

	for i, p := range plans {
		cust := s.customers[i]
		c, err := create.Execute(ctx, ucContract.CreateContractInput{
			StudioID:    s.studio.ID,
			UserID:      s.owner.ID,
			Author:      s.owner.Name,
			CustomerID:  cust.ID,
			PackageID:   s.packages[p.pkg].ID,
			WeddingDate: cust.WeddingDate,
			Location:    "TP. Hồ Chí Minh",
			Discount:    p.discount,
			Services:    p.services,
		})
		if err != nil {
			return err
		}

		if _, _, err := pay.Execute(ctx, ucContract.RecordPaymentInput{
			StudioID:   s.studio.ID,
			UserID:     s.owner.ID,
			ContractID: c.ID,
			Amount:     p.deposit,
			Note:       "Đặt cọc",
		}); err != nil {
			return err
		}

		shoot := calendarDay(s.now.AddDate(0, 0, -10+7*i))
		for _, to := range p.to {
			if c, err = transition.Execute(ctx, s.studio.ID, s.owner.ID, c.ID, contract.TransitionInput{
				To:        to,
				ShootDate: &shoot,
				Author:    s.owner.Name,
			}); err != nil {
				return err
			}
		}
		s.contracts = append(s.contracts, c)
	}
	s.report.Contracts = len(s.contracts)
	return nil
}

func (s *seeder) seedAppointments(ctx context.Context) error {
	uc := ucAppointment.NewCreateAppointment(infraRepo.NewAppointmentGormRepository(s.db), nil)
	loc := timezone.Location(s.studio.Timezone)

	plans := []struct {
		customer int
		kind     string
		inDays   int
		hm       string
	}{
		{3, "consultation", 2, "10:00"},
		{1, "consultation", 3, "15:00"},
		{0, "pre_wedding", 6, "13:00"},
	}

	for _, p := range plans {
		day := workingDay(s.now.In(loc).AddDate(0, 0, p.inDays))
		cust := s.customers[p.customer]
		in := ucAppointment.CreateAppointmentInput{
			StudioID:      s.studio.ID,
			UserID:        s.owner.ID,
			CoupleName:    cust.Name,
			Phone:         cust.Phone,
			CustomerID:    &cust.ID,
			StaffMemberID: &s.staff[0].ID,
			Kind:          p.kind,
			Date:          day.Format("2006-01-02"),
			Time:          p.hm,
		}
		if _, err := uc.Execute(ctx, in); err != nil {
			// a studio with custom hours may reject a slot; the rest of the set still loads
			if code := httperr.BusinessCode(err); code != "" {
				s.log.Warn("appointment skipped", slog.String("reason", code), slog.String("date", in.Date))
				continue
			}
			return err
		}
		s.report.Appointments++
	}
	return nil
}

func (s *seeder) seedTransactions(ctx context.Context) error {
	uc := ucAccounting.NewManageTransactions(infraRepo.NewTransactionGormRepository(s.db), nil)

	month := s.now.Format("2006-01") + "-"
	for _, in := range []ucAccounting.TransactionInput{
		{Type: "expense", Amount: 15_000_000, Category: "rent", Date: month + "01", Description: "Tiền thuê mặt bằng"},
		{Type: "expense", Amount: 2_400_000, Category: "utilities", Date: month + "05", Description: "Điện nước"},
		{Type: "income", Amount: 3_000_000, Category: "printing", Date: month + "03", Description: "In ảnh khách lẻ"},
		{Type: "expense", Amount: 4_500_000, Category: "equipment", Status: "pending", Description: "Đèn flash"},
	} {
		if _, err := uc.Create(ctx, s.studio.ID, s.owner.ID, in); err != nil {
			return err
		}
		s.report.Transactions++
	}
	return nil
}

func (s *seeder) seedRetouch(ctx context.Context) error {
	uc := ucRetouch.NewCreateRetouchItem(infraRepo.NewRetouchGormRepository(s.db), nil)
	editor := s.staff[len(s.staff)-1]

	for _, c := range s.contracts {
		if contract.Status(c.Status) != contract.StatusRetouch {
			continue
		}
		deadline := s.now.AddDate(0, 0, 14)
		if _, err := uc.Execute(ctx, ucRetouch.CreateRetouchInput{
			StudioID:   s.studio.ID,
			UserID:     s.owner.ID,
			ContractID: c.ID,
			AssigneeID: &editor.ID,
			Deadline:   &deadline,
		}); err != nil {
			return err
		}
		s.report.Retouch++
	}
	return nil
}

// calendarDay stores a date the way calendar fields are kept: UTC midnight.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// workingDay moves Sundays to Monday; new studios close on Sunday.
func workingDay(t time.Time) time.Time {
	if t.Weekday() == time.Sunday {
		return t.AddDate(0, 0, 1)
	}
	return t
}
