package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"facilityassist/internal/auth"
	"facilityassist/internal/config"
	"facilityassist/internal/model"
	"facilityassist/internal/repository"
	"facilityassist/internal/storage"
)

// defaultUnitNames is the fixed provisioning list. Units are created by
// display name; re-running the seeder never duplicates an existing one.
var defaultUnitNames = []string{
	"제1전투비행단", "제3훈련비행단", "제5공중기동비행단", "제8전투비행단", "제10전투비행단",
	"제11전투비행단", "제15특수임무비행단", "제16전투비행단", "제17전투비행단", "제18전투비행단",
	"제19전투비행단", "제20전투비행단", "공군사관학교", "공군교육사령부", "미사일방어사령부",
	"방공관제사령부", "공작사근무지원단", "제38전투비행전대", "제7항공통신전대", "항공안전단",
}

// suffixCodes maps unit-name suffixes to short codes. Longest suffixes are
// listed first so 전투비행단 wins over any shorter overlap.
var suffixCodes = []struct {
	Suffix string
	Code   string
}{
	{"공중기동비행단", "MOBILE"},
	{"특수임무비행단", "SPECIAL"},
	{"미사일방어사령부", "MISSILE_CMD"},
	{"방공관제사령부", "AD_CMD"},
	{"공작사근무지원단", "SUPPORT"},
	{"항공통신전대", "COMM_SQUADRON"},
	{"전투비행전대", "SQUADRON"},
	{"전투비행단", "WING"},
	{"훈련비행단", "TRAIN"},
	{"교육사령부", "EDU_CMD"},
	{"사관학교", "ACADEMY"},
	{"항공안전단", "SAFETY"},
}

// Seeder provisions the baseline admin account, units, unit managers, and
// starter content. Every step is existence-checked, so running it on every
// startup is safe.
type Seeder struct {
	units     repository.UnitRepository
	users     repository.UserRepository
	notices   repository.NoticeRepository
	documents repository.DocumentRepository
	store     storage.Storage
	hasher    *auth.PasswordHasher
	cfg       config.SeedConfig
}

// New constructs a Seeder.
func New(
	units repository.UnitRepository,
	users repository.UserRepository,
	notices repository.NoticeRepository,
	documents repository.DocumentRepository,
	store storage.Storage,
	hasher *auth.PasswordHasher,
	cfg config.SeedConfig,
) *Seeder {
	return &Seeder{
		units:     units,
		users:     users,
		notices:   notices,
		documents: documents,
		store:     store,
		hasher:    hasher,
		cfg:       cfg,
	}
}

// Run executes the full provisioning pass.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.ensureAdmin(ctx); err != nil {
		return err
	}
	if err := s.ensureUnitsAndManagers(ctx); err != nil {
		return err
	}
	if err := s.ensureSampleNotices(ctx); err != nil {
		return err
	}
	return s.ensureSampleDocuments(ctx)
}

func (s *Seeder) ensureAdmin(ctx context.Context) error {
	exists, err := s.users.ExistsByUsername(ctx, "admin")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := s.hasher.Hash(s.cfg.AdminPassword)
	if err != nil {
		return err
	}
	admin, err := s.users.Create(ctx, &model.User{
		Username:     "admin",
		Name:         "시스템 관리자",
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	})
	if err != nil {
		return err
	}
	logEvent("seed_admin_created", map[string]any{"username": admin.Username})
	return nil
}

func (s *Seeder) ensureUnitsAndManagers(ctx context.Context) error {
	for _, name := range defaultUnitNames {
		exists, err := s.units.ExistsByName(ctx, name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		unit, err := s.units.Create(ctx, &model.Unit{
			Name: name,
			Code: UnitCode(name),
		})
		if err != nil {
			return err
		}
		logEvent("seed_unit_created", map[string]any{"unit": unit.Name, "code": unit.Code})

		if err := s.ensureManager(ctx, unit); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) ensureManager(ctx context.Context, unit *model.Unit) error {
	username := strings.ToLower(unit.Code) + "_manager"

	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := s.hasher.Hash(s.cfg.ManagerPassword)
	if err != nil {
		return err
	}
	manager, err := s.users.Create(ctx, &model.User{
		Username:     username,
		Name:         unit.Name + " 관리자",
		PasswordHash: hash,
		Role:         model.RoleManager,
		UnitID:       &unit.ID,
	})
	if err != nil {
		return err
	}
	logEvent("seed_manager_created", map[string]any{"username": manager.Username, "unit": unit.Name})
	return nil
}

// sampleNotices is the starter content created once on an empty notices
// table, authored by the admin account.
var sampleNotices = []struct {
	Title   string
	Content string
}{
	{
		"2024년 1분기 시설물 점검 일정 안내",
		"2024년 1분기 시설물 점검 일정을 안내드립니다.\n\n1. 점검 기간: 2024년 1월 15일 ~ 3월 31일\n2. 점검 대상: 전체 시설물\n3. 점검 내용: 안전점검, 기능점검, 유지보수\n\n각 부서에서는 해당 일정에 맞춰 점검을 실시해 주시기 바랍니다.",
	},
	{
		"시설물 유지보수 매뉴얼 업데이트",
		"시설물 유지보수 매뉴얼이 v2.1로 업데이트되었습니다.\n\n주요 변경사항:\n- 새로운 점검 항목 추가\n- 안전 수칙 강화\n- 점검 주기 조정\n\n자세한 내용은 자료실에서 확인하실 수 있습니다.",
	},
	{
		"공병관리체계 정기 점검 안내",
		"공병관리체계 정기 점검을 실시합니다.\n\n점검 일시: 2024년 1월 10일 09:00 ~ 18:00\n점검 내용: 시스템 안정성, 데이터 백업, 보안 점검\n\n점검 시간 동안 시스템 이용이 제한될 수 있으니 양해 부탁드립니다.",
	},
	{
		"시설물 안전관리 규정 개정",
		"시설물 안전관리 규정이 개정되었습니다.\n\n주요 개정 내용:\n1. 안전점검 주기 단축\n2. 점검 항목 세분화\n3. 보고서 양식 변경\n\n새로운 규정은 2024년 2월 1일부터 시행됩니다.",
	},
	{
		"2024년 시설물 관리 계획",
		"2024년 시설물 관리 계획을 수립하여 안내드립니다.\n\n주요 계획:\n- 시설물 현대화 사업\n- 예방적 유지보수 강화\n- 관리자 교육 프로그램 운영\n- 디지털 관리 시스템 도입\n\n자세한 계획은 별도 공문으로 전달됩니다.",
	},
	{
		"시설물 수리비 예산 배정 안내",
		"2024년 시설물 수리비 예산이 배정되었습니다.\n\n배정 현황:\n- 일반 수리비: 50억원\n- 긴급 수리비: 10억원\n- 예방 유지보수비: 20억원\n\n예산 사용 시 사전 승인을 받아 주시기 바랍니다.",
	},
	{
		"겨울철 시설물 관리 주의사항",
		"겨울철 시설물 관리 시 주의사항을 안내드립니다.\n\n주의사항:\n1. 난방 시설 점검 및 보수\n2. 배관 동파 방지 조치\n3. 전기 시설 안전 점검\n4. 제설 작업 준비\n\n안전한 겨울철을 위해 각별한 주의를 기울여 주시기 바랍니다.",
	},
	{
		"시설물 점검 결과 보고서",
		"2023년 4분기 시설물 점검 결과를 보고드립니다.\n\n점검 결과:\n- 전체 점검 대상: 150개 시설물\n- 양호: 120개 (80%)\n- 보통: 25개 (17%)\n- 불량: 5개 (3%)\n\n불량 시설물에 대해서는 즉시 보수 조치를 실시하겠습니다.",
	},
	{
		"신규 시설물 등록 절차 안내",
		"신규 시설물 등록 절차를 안내드립니다.\n\n등록 절차:\n1. 시설물 등록 신청서 작성\n2. 관련 서류 첨부\n3. 관리부서 검토\n4. 시스템 등록\n\n등록 신청서는 자료실에서 다운로드 받으실 수 있습니다.",
	},
	{
		"시설물 관리자 교육 일정",
		"시설물 관리자 교육 일정을 안내드립니다.\n\n교육 일정:\n- 1차: 2024년 2월 15일\n- 2차: 2024년 3월 15일\n- 3차: 2024년 4월 15일\n\n교육 내용: 시설물 관리 이론, 실무 교육, 시스템 사용법\n참가 신청은 각 부서별로 접수해 주시기 바랍니다.",
	},
}

// sampleDocuments is the starter content created once on an empty documents
// table. The declared size is stored verbatim; the stored object holds
// placeholder bytes.
var sampleDocuments = []struct {
	Title       string
	Description string
	FileName    string
	FileType    string
	FileSize    int64
}{
	{"시설물 점검 매뉴얼 v2.1", "2024년 업데이트된 시설물 점검 매뉴얼입니다. 새로운 점검 항목과 안전 수칙이 포함되어 있습니다.", "facility_inspection_manual_v2.1.pdf", "application/pdf", 2048576},
	{"시설물 안전관리 규정", "시설물 안전관리 규정 개정본입니다. 2024년 2월 1일부터 시행됩니다.", "facility_safety_regulations_2024.pdf", "application/pdf", 1536000},
	{"시설물 등록 신청서", "신규 시설물 등록 시 사용하는 신청서 양식입니다.", "facility_registration_form.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", 512000},
	{"시설물 점검 체크리스트", "시설물 점검 시 사용하는 체크리스트 양식입니다.", "facility_inspection_checklist.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", 256000},
	{"시설물 사진 - 제1전투비행단", "제1전투비행단 시설물 현황 사진입니다.", "facility_photo_1st_wing.jpg", "image/jpeg", 1024000},
	{"시설물 수리비 예산 계획서", "2024년 시설물 수리비 예산 계획서입니다.", "facility_repair_budget_2024.pdf", "application/pdf", 3072000},
	{"시설물 관리자 교육 자료", "시설물 관리자 교육에 사용되는 교육 자료입니다.", "facility_manager_training_materials.pptx", "application/vnd.openxmlformats-officedocument.presentationml.presentation", 5120000},
	{"시설물 점검 결과 보고서 템플릿", "시설물 점검 결과 보고서 작성용 템플릿입니다.", "inspection_report_template.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", 384000},
	{"시설물 유지보수 일정표", "2024년 시설물 유지보수 일정표입니다.", "facility_maintenance_schedule_2024.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", 768000},
	{"시설물 안전 점검 가이드", "시설물 안전 점검을 위한 상세 가이드입니다.", "facility_safety_inspection_guide.pdf", "application/pdf", 4096000},
}

// findAdmin resolves the seeded admin account. A missing admin skips the
// sample-content passes instead of failing startup.
func (s *Seeder) findAdmin(ctx context.Context) (*model.User, error) {
	admin, err := s.users.FindByUsername(ctx, "admin")
	if errors.Is(err, sql.ErrNoRows) {
		logEvent("seed_sample_skipped", map[string]any{"reason": "admin user not found"})
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *Seeder) ensureSampleNotices(ctx context.Context) error {
	existing, err := s.notices.List(ctx, repository.PageQuery{Limit: 1})
	if err != nil {
		return err
	}
	if existing.Total > 0 {
		return nil
	}

	admin, err := s.findAdmin(ctx)
	if err != nil || admin == nil {
		return err
	}

	for _, n := range sampleNotices {
		if _, err := s.notices.Create(ctx, &model.Notice{
			Title:    n.Title,
			Content:  n.Content,
			AuthorID: admin.ID,
		}); err != nil {
			return err
		}
	}
	logEvent("seed_notices_created", map[string]any{"count": len(sampleNotices)})
	return nil
}

func (s *Seeder) ensureSampleDocuments(ctx context.Context) error {
	existing, err := s.documents.ListActive(ctx, repository.PageQuery{Limit: 1})
	if err != nil {
		return err
	}
	if existing.Total > 0 {
		return nil
	}

	admin, err := s.findAdmin(ctx)
	if err != nil || admin == nil {
		return err
	}

	for _, d := range sampleDocuments {
		content := d.FileName + " placeholder"
		key := "documents/" + uuid.NewString() + path.Ext(d.FileName)

		if _, err := s.store.Put(ctx, key, strings.NewReader(content), storage.PutObjectOptions{
			Size:        int64(len(content)),
			ContentType: d.FileType,
			Metadata:    map[string]string{"original-filename": d.FileName},
		}); err != nil {
			return err
		}

		if _, err := s.documents.Create(ctx, &model.Document{
			Title:       d.Title,
			Description: d.Description,
			FileName:    d.FileName,
			FileType:    d.FileType,
			FileSize:    d.FileSize,
			StorageKey:  key,
			UploaderID:  admin.ID,
			Active:      true,
		}); err != nil {
			if delErr := s.store.Delete(ctx, key); delErr != nil {
				logEvent("seed_rollback_delete_failed", map[string]any{"key": key, "error": delErr.Error()})
			}
			return err
		}
	}
	logEvent("seed_documents_created", map[string]any{"count": len(sampleDocuments)})
	return nil
}

// UnitCode derives a stable, uppercase code from a unit display name.
// Numerals are kept, the leading 제 ordinal marker is dropped, and a known
// suffix is swapped for its short code. Names without a numeral fall back
// to their first few characters, so provisioned codes stay unique as long
// as the names are.
func UnitCode(name string) string {
	cleaned := keepDigitsAndHangul(name)
	cleaned = strings.TrimPrefix(cleaned, "제")

	code := cleaned
	for _, sc := range suffixCodes {
		if idx := strings.Index(cleaned, sc.Suffix); idx >= 0 {
			code = cleaned[:idx] + sc.Code
			break
		}
	}

	if code == "" || !strings.ContainsFunc(code, unicode.IsDigit) {
		code = truncateHangul(name, 5)
	}

	return strings.ToUpper(code)
}

func keepDigitsAndHangul(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) || unicode.Is(unicode.Hangul, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncateHangul(s string, n int) string {
	var b strings.Builder
	count := 0
	for _, r := range s {
		if count >= n {
			break
		}
		count++
		if unicode.Is(unicode.Hangul, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func logEvent(event string, fields map[string]any) {
	entry := map[string]any{
		"ts":        time.Now().Format(time.RFC3339Nano),
		"level":     "info",
		"component": "seed",
		"event":     event,
	}
	for k, v := range fields {
		entry[k] = v
	}
	if b, err := json.Marshal(entry); err == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
