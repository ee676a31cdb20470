package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"store-route-service/internal/domain"
	"store-route-service/internal/platform/db"
	"store-route-service/internal/platform/obs"
)

// SQLFloorPlanRepository implements the FloorPlanProvider port on Postgres
// (pgx) or SQLite. Queries are written with $n placeholders and rebound for
// the configured driver.
type SQLFloorPlanRepository struct {
	DB     *sql.DB
	Driver string
}

func NewSQLFloorPlanRepository(conn *sql.DB, driver string) *SQLFloorPlanRepository {
	return &SQLFloorPlanRepository{DB: conn, Driver: driver}
}

func (s *SQLFloorPlanRepository) q(query string) string { return db.Rebind(s.Driver, query) }

// Return the shop's bounds, anchors, obstacles and categories as one snapshot.
// Reads run in a single transaction so the snapshot is consistent.
func (s *SQLFloorPlanRepository) GetFloorPlan(ctx context.Context, shopID int64) (_ *domain.FloorPlan, err error) {
	defer obs.Time(ctx, "floorplan.repo.GetFloorPlan")(&err)

	if s.DB == nil {
		return nil, errors.New("sql floor plan repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("get floor plan: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	plan := &domain.FloorPlan{ShopID: shopID}
	var entX, entY, exX, exY sql.NullFloat64

	err = tx.QueryRowContext(ctx, s.q(`
	SELECT
		name, width, height, physical_width_m, physical_height_m,
		entrance_x, entrance_y, exit_x, exit_y, version
	FROM shops
	WHERE shop_id = $1;
	`), shopID).Scan(
		&plan.Name, &plan.Bounds.Width, &plan.Bounds.Height,
		&plan.PhysicalWidthMeters, &plan.PhysicalHeightMeters,
		&entX, &entY, &exX, &exY, &plan.Version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get floor plan: shop %d: %w", shopID, domain.ErrShopNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get floor plan: query shops table: %w", err)
	}
	plan.Entrance = nullPoint(entX, entY)
	plan.Exit = nullPoint(exX, exY)

	rows, err := tx.QueryContext(ctx, s.q(`
	SELECT obstacle_id, x, y, width, height, type
	FROM obstacles
	WHERE shop_id = $1
	ORDER BY obstacle_id;
	`), shopID)
	if err != nil {
		return nil, fmt.Errorf("get floor plan: query obstacles table: %w", err)
	}
	for rows.Next() {
		var o domain.Obstacle
		var typ string
		if err := rows.Scan(&o.ID, &o.X, &o.Y, &o.Width, &o.Height, &typ); err != nil {
			rows.Close()
			return nil, fmt.Errorf("get floor plan: scan obstacle row: %w", err)
		}
		o.Type = domain.ObstacleType(typ)
		plan.Obstacles = append(plan.Obstacles, o)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("get floor plan: obstacle row iteration: %w", err)
	}
	rows.Close()

	rows, err = tx.QueryContext(ctx, s.q(`
	SELECT category_id, name, x, y
	FROM categories
	WHERE shop_id = $1
	ORDER BY category_id;
	`), shopID)
	if err != nil {
		return nil, fmt.Errorf("get floor plan: query categories table: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c domain.Category
		var x, y sql.NullFloat64
		if err := rows.Scan(&c.ID, &c.Name, &x, &y); err != nil {
			return nil, fmt.Errorf("get floor plan: scan category row: %w", err)
		}
		c.Point = nullPoint(x, y)
		plan.Categories = append(plan.Categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get floor plan: category row iteration: %w", err)
	}

	return plan, nil
}

// Return a category's stored location in a shop; nil when it has not been placed.
func (s *SQLFloorPlanRepository) GetCategoryPoint(ctx context.Context, shopID, categoryID int64) (_ *domain.Point, err error) {
	defer obs.Time(ctx, "floorplan.repo.GetCategoryPoint")(&err)

	if s.DB == nil {
		return nil, errors.New("sql floor plan repository: DB is nil")
	}

	var x, y sql.NullFloat64
	err = s.DB.QueryRowContext(ctx, s.q(`
	SELECT x, y FROM categories WHERE shop_id = $1 AND category_id = $2;
	`), shopID, categoryID).Scan(&x, &y)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get category point: shop %d category %d: %w", shopID, categoryID, domain.ErrCategoryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get category point: query categories table: %w", err)
	}

	return nullPoint(x, y), nil
}

// SaveFloorPlan upserts the shop row and replaces its obstacles and
// categories. Every save bumps the stored version.
func (s *SQLFloorPlanRepository) SaveFloorPlan(ctx context.Context, plan *domain.FloorPlan) error {
	if s.DB == nil {
		return errors.New("sql floor plan repository: DB is nil")
	}
	if err := plan.Validate(); err != nil {
		return fmt.Errorf("save floor plan: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save floor plan: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	entX, entY := pointArgs(plan.Entrance)
	exX, exY := pointArgs(plan.Exit)

	_, err = tx.ExecContext(ctx, s.q(`
	INSERT INTO shops (
		shop_id, name, width, height, physical_width_m, physical_height_m,
		entrance_x, entrance_y, exit_x, exit_y, version
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1)
	ON CONFLICT (shop_id) DO UPDATE
	SET name = excluded.name,
		width = excluded.width,
		height = excluded.height,
		physical_width_m = excluded.physical_width_m,
		physical_height_m = excluded.physical_height_m,
		entrance_x = excluded.entrance_x,
		entrance_y = excluded.entrance_y,
		exit_x = excluded.exit_x,
		exit_y = excluded.exit_y,
		version = shops.version + 1;
	`),
		plan.ShopID, plan.Name, plan.Bounds.Width, plan.Bounds.Height,
		plan.PhysicalWidthMeters, plan.PhysicalHeightMeters,
		entX, entY, exX, exY,
	)
	if err != nil {
		return fmt.Errorf("save floor plan: upsert shop %d: %w", plan.ShopID, err)
	}

	for _, table := range []string{"obstacles", "categories"} {
		if _, err := tx.ExecContext(ctx, s.q(`DELETE FROM `+table+` WHERE shop_id = $1;`), plan.ShopID); err != nil {
			return fmt.Errorf("save floor plan: clear %s for shop %d: %w", table, plan.ShopID, err)
		}
	}

	obstacleStmt, err := tx.PrepareContext(ctx, s.q(`
	INSERT INTO obstacles (obstacle_id, shop_id, x, y, width, height, type)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`))
	if err != nil {
		return fmt.Errorf("save floor plan: prepare obstacle insert: %w", err)
	}
	defer obstacleStmt.Close()

	for _, o := range plan.Obstacles {
		if _, err := obstacleStmt.ExecContext(ctx, o.ID, plan.ShopID, o.X, o.Y, o.Width, o.Height, string(o.Type)); err != nil {
			return fmt.Errorf("save floor plan: insert obstacle_id=%d: %w", o.ID, err)
		}
	}

	categoryStmt, err := tx.PrepareContext(ctx, s.q(`
	INSERT INTO categories (category_id, shop_id, name, x, y)
	VALUES ($1, $2, $3, $4, $5);
	`))
	if err != nil {
		return fmt.Errorf("save floor plan: prepare category insert: %w", err)
	}
	defer categoryStmt.Close()

	for _, c := range plan.Categories {
		x, y := pointArgs(c.Point)
		if _, err := categoryStmt.ExecContext(ctx, c.ID, plan.ShopID, c.Name, x, y); err != nil {
			return fmt.Errorf("save floor plan: insert category_id=%d: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save floor plan: commit tx: %w", err)
	}

	return nil
}

func nullPoint(x, y sql.NullFloat64) *domain.Point {
	if !x.Valid || !y.Valid {
		return nil
	}
	return &domain.Point{X: x.Float64, Y: y.Float64}
}

func pointArgs(p *domain.Point) (any, any) {
	if p == nil {
		return nil, nil
	}
	return p.X, p.Y
}
