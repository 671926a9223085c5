// Package router đăng ký các route thuộc domain scratchoff:
// slot, sản phẩm, pack, lịch sử pack, snapshot và đối soát theo ca.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"scratch_portal/internal/api/middleware"
	apirouter "scratch_portal/internal/api/router"
	scratchoffhdl "scratch_portal/internal/api/scratchoff/handler"
)

// Register đăng ký tất cả route scratchoff lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	if err := registerSlotRoutes(v1, r); err != nil {
		return err
	}
	if err := registerProductRoutes(v1, r); err != nil {
		return err
	}
	if err := registerPackRoutes(v1, r); err != nil {
		return err
	}
	if err := registerSnapshotRoutes(v1, r); err != nil {
		return err
	}
	if err := registerCalculationRoutes(v1, r); err != nil {
		return err
	}
	return nil
}

// withStoreContext chain chuẩn cho route bespoke: auth theo permission rồi store context.
func withStoreContext(permission string) []fiber.Handler {
	return []fiber.Handler{
		middleware.AuthMiddleware(permission),
		middleware.StoreContextMiddleware(),
	}
}

func registerSlotRoutes(router fiber.Router, r *apirouter.Router) error {
	slotHandler, err := scratchoffhdl.NewSlotHandler()
	if err != nil {
		return fmt.Errorf("failed to create slot handler: %w", err)
	}
	apirouter.RegisterRouteWithMiddleware(router, "/scratchoff/slot", "POST", "/create",
		withStoreContext("Scratchoff.Slot.Insert"), slotHandler.HandleCreateSlot)
	apirouter.RegisterRouteWithMiddleware(router, "/scratchoff/slot", "POST", "/init",
		withStoreContext("Scratchoff.Slot.Insert"), slotHandler.HandleInitSlots)
	apirouter.RegisterRouteWithMiddleware(router, "/scratchoff/slot", "PUT", "/patch/:id",
		withStoreContext("Scratchoff.Slot.Update"), slotHandler.HandleUpdateSlot)
	r.RegisterCRUDRoutes(router, "/scratchoff/slot", slotHandler, apirouter.ReadOnlyConfig, "Scratchoff.Slot")
	return nil
}

func registerProductRoutes(router fiber.Router, r *apirouter.Router) error {
	productHandler, err := scratchoffhdl.NewProductHandler()
	if err != nil {
		return fmt.Errorf("failed to create product handler: %w", err)
	}
	apirouter.RegisterRouteWithMiddleware(router, "/scratchoff/product", "POST", "/upsert",
		withStoreContext("Scratchoff.Product.Update"), productHandler.HandleUpsertProduct)
	r.RegisterCRUDRoutes(router, "/scratchoff/product", productHandler, apirouter.ReadOnlyConfig, "Scratchoff.Product")
	return nil
}

func registerPackRoutes(router fiber.Router, r *apirouter.Router) error {
	packHandler, err := scratchoffhdl.NewPackHandler()
	if err != nil {
		return fmt.Errorf("failed to create pack handler: %w", err)
	}
	apirouter.RegisterRouteWithMiddleware(router, "/scratchoff/pack", "POST", "/activate",
		withStoreContext("Scratchoff.Pack.Activate"), packHandler.HandleActivatePack)
	apirouter.RegisterRouteWithMiddleware(router, "/scratchoff/pack", "POST", "/return",
		withStoreContext("Scratchoff.Pack.Return"), packHandler.HandleReturnPack)
	apirouter.RegisterRouteWithMiddleware(router, "/scratchoff/pack", "GET", "/events/:id",
		withStoreContext("Scratchoff.Pack.Read"), packHandler.HandlePackEvents)
	r.RegisterCRUDRoutes(router, "/scratchoff/pack", packHandler, apirouter.ReadOnlyConfig, "Scratchoff.Pack")

	packEventHandler, err := scratchoffhdl.NewPackEventHandler()
	if err != nil {
		return fmt.Errorf("failed to create pack event handler: %w", err)
	}
	apirouter.RegisterRouteWithMiddleware(router, "/scratchoff/pack-event", "POST", "/create",
		withStoreContext("Scratchoff.PackEvent.Insert"), packHandler.HandleCreatePackEvent)
	r.RegisterCRUDRoutes(router, "/scratchoff/pack-event", packEventHandler, apirouter.ReadOnlyConfig, "Scratchoff.PackEvent")
	return nil
}

func registerSnapshotRoutes(router fiber.Router, r *apirouter.Router) error {
	snapshotHandler, err := scratchoffhdl.NewSnapshotHandler()
	if err != nil {
		return fmt.Errorf("failed to create snapshot handler: %w", err)
	}
	apirouter.RegisterRouteWithMiddleware(router, "/scratchoff/snapshot", "POST", "/baseline",
		withStoreContext("Scratchoff.Snapshot.Baseline"), snapshotHandler.HandleCreateBaseline)
	apirouter.RegisterRouteWithMiddleware(router, "/scratchoff/snapshot", "POST", "/shift",
		withStoreContext("Scratchoff.Snapshot.Insert"), snapshotHandler.HandleCreateShiftSnapshot)
	r.RegisterCRUDRoutes(router, "/scratchoff/snapshot", snapshotHandler, apirouter.ReadOnlyConfig, "Scratchoff.Snapshot")

	snapshotItemHandler, err := scratchoffhdl.NewSnapshotItemHandler()
	if err != nil {
		return fmt.Errorf("failed to create snapshot item handler: %w", err)
	}
	r.RegisterCRUDRoutes(router, "/scratchoff/snapshot-item", snapshotItemHandler, apirouter.ReadOnlyConfig, "Scratchoff.SnapshotItem")
	return nil
}

func registerCalculationRoutes(router fiber.Router, r *apirouter.Router) error {
	calculationHandler, err := scratchoffhdl.NewCalculationHandler()
	if err != nil {
		return fmt.Errorf("failed to create calculation handler: %w", err)
	}
	apirouter.RegisterRouteWithMiddleware(router, "/scratchoff/calculation", "POST", "/recalculate",
		withStoreContext("Scratchoff.Calculation.Recalculate"), calculationHandler.HandleRecalculate)
	apirouter.RegisterRouteWithMiddleware(router, "/scratchoff/calculation", "GET", "/discrepancies",
		withStoreContext("Scratchoff.Calculation.Read"), calculationHandler.HandleListDiscrepancies)
	r.RegisterCRUDRoutes(router, "/scratchoff/calculation", calculationHandler, apirouter.ReadOnlyConfig, "Scratchoff.Calculation")
	return nil
}
