package catalog

import (
	"context"
	"strings"
	"testing"
)

const importCSV = `id,title,description,price,image_url,gallery,badge_type,badge_text,variants,colour
,Retro Tape,C90,500,tape.png,a.png;b.png,none,,,red
7,Holo Stickers,,,,,discount,20% OFF,10 Pack|1200|10.png;20 Pack|2000|20.png,
8,,,100,x.png,,,,,
9,Bad Variant,,100,x.png,,,,broken,
`

func TestImportProducts(t *testing.T) {
	svc, _ := testService(t, nil)
	ctx := context.Background()
	res, err := svc.ImportProducts(ctx, strings.NewReader(importCSV), ImportOptions{})
	if err != nil {
		t.Fatalf("ImportProducts: %v", err)
	}
	if res.TotalRows != 4 || res.Created != 3 || res.Skipped != 1 {
		t.Errorf("result = %+v", res)
	}
	if len(res.Warnings) < 3 {
		t.Errorf("warnings = %v", res.Warnings)
	}

	p, err := svc.GetProduct(ctx, 7)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if len(p.Variants) != 2 || p.Price != "1200" || DisplayPrice(p) != 960 {
		t.Errorf("imported product = %+v", p)
	}

	again, err := svc.ImportProducts(ctx, strings.NewReader(importCSV), ImportOptions{})
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if again.Updated != 2 || again.Created != 1 {
		t.Errorf("re-import result = %+v", again)
	}
}

func TestImportProducts_DryRun(t *testing.T) {
	svc, _ := testService(t, nil)
	ctx := context.Background()
	res, err := svc.ImportProducts(ctx, strings.NewReader(importCSV), ImportOptions{DryRun: true})
	if err != nil {
		t.Fatalf("ImportProducts: %v", err)
	}
	if res.Created != 0 || res.Skipped != 1 {
		t.Errorf("result = %+v", res)
	}
	if list, _ := svc.ListProducts(ctx); len(list) != 0 {
		t.Errorf("dry run wrote %d products", len(list))
	}
}

func TestImportProducts_NeedsTitle(t *testing.T) {
	svc, _ := testService(t, nil)
	if _, err := svc.ImportProducts(context.Background(), strings.NewReader("id,price\n1,2\n"), ImportOptions{}); err == nil {
		t.Error("want error without title column")
	}
}
