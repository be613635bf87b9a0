package handlers

import (
	"github.com/23himanshusingh/network-inventory-manager/internal/database"
	"github.com/23himanshusingh/network-inventory-manager/internal/services"
)

var (
	capacitySvc  *services.CapacityService
	hierarchySvc *services.HierarchyService
	customerSvc  *services.CustomerService
	assetSvc     *services.AssetService
	topologySvc  *services.TopologyService
	workforceSvc *services.WorkforceService
)

// InitServices wires the handler layer to the shared database connection.
// Called once from main after database.Connect.
func InitServices() {
	capacitySvc = services.NewCapacityService(database.DB)
	hierarchySvc = services.NewHierarchyService(database.DB, capacitySvc)
	customerSvc = services.NewCustomerService(database.DB, capacitySvc)
	assetSvc = services.NewAssetService(database.DB)
	topologySvc = services.NewTopologyService(database.DB)
	workforceSvc = services.NewWorkforceService(database.DB)
}
