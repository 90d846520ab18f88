package main

import (
	"context"
	"fmt"
	"log"

	"github.com/notaryweb/internal/config"
	"github.com/notaryweb/internal/db"
	"github.com/notaryweb/internal/service"
)

// 测试数据生成器：为本地开发填充各类内容，已有数据的资源会被跳过。
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("配置加载失败:", err)
	}

	gdb, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatal("数据库初始化失败:", err)
	}
	defer db.Close(gdb)

	fmt.Println("开始生成测试数据...")

	if err := db.EnsureUser(gdb, "admin", "admin123"); err != nil {
		log.Fatal("创建管理员失败:", err)
	}

	created, err := seedContent(context.Background(), service.NewCatalog(gdb, service.Dependencies{}))
	if err != nil {
		log.Fatal("生成内容失败:", err)
	}

	fmt.Println("测试数据生成完成！")
	fmt.Println("用户: admin (密码: admin123)")
	fmt.Printf("内容: %d 条\n", created)
}

func str(v string) *string { return &v }

func seedContent(ctx context.Context, catalog *service.Catalog) (int, error) {
	created := 0

	seed := func(name string, count func() (int, error), create func() (int, error)) error {
		existing, err := count()
		if err != nil {
			return err
		}
		if existing > 0 {
			fmt.Printf("%s 已存在，跳过创建\n", name)
			return nil
		}
		n, err := create()
		created += n
		if err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
		return nil
	}

	steps := []struct {
		name   string
		count  func() (int, error)
		create func() (int, error)
	}{
		{"banners", countOf(ctx, catalog.Banners.ListAdmin), func() (int, error) {
			return createAll(ctx, catalog.Banners.Create, []service.BannerInput{
				{Title: str("Cartório do 1º Ofício"), Subtitle: str("Tradição e segurança jurídica"), ImageURL: str("/static/uploads/banner-fachada.jpg")},
				{Title: str("Agende seu atendimento"), Subtitle: str("Escrituras, procurações e reconhecimento de firma"), ImageURL: str("/static/uploads/banner-atendimento.jpg"), LinkURL: str("/pages/contato")},
			})
		}},
		{"services", countOf(ctx, catalog.Services.ListAdmin), func() (int, error) {
			return createAll(ctx, catalog.Services.Create, []service.OfficeServiceInput{
				{Title: str("Escrituras"), Summary: str("Compra e venda, doação e permuta"), Description: str("## Documentos\n\n- RG e CPF das partes\n- Certidão de matrícula do imóvel"), Icon: str("file-signature")},
				{Title: str("Procurações"), Summary: str("Públicas, para fins específicos ou gerais"), Icon: str("handshake")},
				{Title: str("Reconhecimento de firma"), Summary: str("Por autenticidade ou semelhança"), Icon: str("pen")},
			})
		}},
		{"links", countOf(ctx, catalog.Links.ListAdmin), func() (int, error) {
			return createAll(ctx, catalog.Links.Create, []service.LinkInput{
				{Name: str("TJ-RJ"), URL: str("https://www.tjrj.jus.br")},
				{Name: str("CNJ"), URL: str("https://www.cnj.jus.br")},
				{Name: str("Colégio Notarial do Brasil"), URL: str("https://www.notariado.org.br")},
			})
		}},
		{"news", countOf(ctx, catalog.News.ListAdmin), func() (int, error) {
			return createAll(ctx, catalog.News.Create, []service.NewsInput{
				{Title: str("Novo horário de atendimento"), Summary: str("A partir de março atendemos aos sábados."), Content: str("A partir de **março** o cartório abre aos sábados das 9h às 12h.")},
				{Title: str("Inventário extrajudicial"), Summary: str("Mais rápido e sem processo judicial."), Content: str("Quando todos os herdeiros são maiores e concordes, o inventário pode ser feito em cartório.")},
			})
		}},
		{"pages", countOf(ctx, catalog.Pages.ListAdmin), func() (int, error) {
			return createAll(ctx, catalog.Pages.Create, []service.PageInput{
				{Slug: str("sobre"), Title: str("Sobre o cartório"), Content: str("Fundado em 1950, atende a região central da cidade.")},
				{Slug: str("contato"), Title: str("Contato"), Content: str("Rua Primeiro de Março, 100 - Centro\n\nTelefone: (21) 2222-0000")},
			})
		}},
		{"review images", countOf(ctx, catalog.ReviewImages.ListAdmin), func() (int, error) {
			return createAll(ctx, catalog.ReviewImages.Create, []service.ReviewImageInput{
				{ImageURL: str("/static/uploads/review-1.png"), Caption: str("Atendimento excelente"), Author: str("Ana")},
				{ImageURL: str("/static/uploads/review-2.png"), Caption: str("Rápido e organizado"), Author: str("Carlos")},
			})
		}},
		{"announcements", countOf(ctx, catalog.Announcements.ListAdmin), func() (int, error) {
			return createAll(ctx, catalog.Announcements.Create, []service.AnnouncementInput{
				{Title: str("Feriado"), Message: str("Não haverá expediente no dia 20 de janeiro."), LinkURL: str("/news")},
			})
		}},
	}

	for _, step := range steps {
		if err := seed(step.name, step.count, step.create); err != nil {
			return created, err
		}
	}
	return created, nil
}

func countOf[T any](ctx context.Context, list func(context.Context) ([]T, error)) func() (int, error) {
	return func() (int, error) {
		items, err := list(ctx)
		return len(items), err
	}
}

func createAll[T any, P any](ctx context.Context, create func(context.Context, P) (*T, error), inputs []P) (int, error) {
	for i, in := range inputs {
		if _, err := create(ctx, in); err != nil {
			return i, err
		}
	}
	return len(inputs), nil
}
